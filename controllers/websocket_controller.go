package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/metrics"
	"agvet-chatbot-backend/models"
	"agvet-chatbot-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin filtering happens in the CORS middleware
	},
}

type WebSocketController struct {
	chatbotService *services.ChatbotService
	log            logger.Logger
}

func NewWebSocketController(chatbotService *services.ChatbotService, log logger.Logger) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
		log:            log,
	}
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.log.Error("websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	metrics.ActiveWebSocketConnections.Inc()
	defer metrics.ActiveWebSocketConnections.Dec()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	// Open the conversation with the greeting for the page the socket
	// was opened from.
	greeting := wc.chatbotService.GetGreeting(sessionID, c.Query("page"))
	if err := conn.WriteJSON(greeting); err != nil {
		return
	}

	for {
		var msg map[string]string
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wc.log.Warn("websocket read error", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
			break
		}

		req := models.ChatRequest{
			Message:   msg["message"],
			SessionID: sessionID,
			Page:      msg["page"],
		}
		if req.Message == "" {
			conn.WriteJSON(map[string]interface{}{"error": "message is required"})
			continue
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			conn.WriteJSON(map[string]interface{}{"error": "Failed to process message"})
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			break
		}
	}
}

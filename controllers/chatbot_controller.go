package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agvet-chatbot-backend/models"
	"agvet-chatbot-backend/services"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes one chat turn
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetGreeting opens or restarts a conversation with a page-aware greeting
func (cc *ChatbotController) GetGreeting(c *gin.Context) {
	sessionID := c.Query("session_id")
	page := c.Query("page")

	c.JSON(http.StatusOK, cc.chatbotService.GetGreeting(sessionID, page))
}

// ResetChat clears the conversation state for a session
func (cc *ChatbotController) ResetChat(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	cc.chatbotService.ResetSession(req.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Session reset successfully",
	})
}

// GetSupportedIntents returns every intent name the rule tables know
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"intents": cc.chatbotService.SupportedIntents(),
	})
}

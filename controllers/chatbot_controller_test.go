package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agvet-chatbot-backend/chatbot"
	"agvet-chatbot-backend/config"
	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/models"
	"agvet-chatbot-backend/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine, err := chatbot.New(chatbot.WithSeed(1))
	require.NoError(t, err)

	log := logger.NewNop()
	chatbotService := services.NewChatbotService(engine, config.ChatConfig{Seed: 1}, log)
	whatsappService := services.NewWhatsAppService(config.BusinessConfig{
		CompanyName:   "Divine Agvet",
		WhatsAppPhone: "2348136972328",
	}, log)

	cc := NewChatbotController(chatbotService)
	ic := NewInquiryController(whatsappService)

	router := gin.New()
	router.POST("/api/v1/chat", cc.HandleChat)
	router.GET("/api/v1/chat/greeting", cc.GetGreeting)
	router.POST("/api/v1/chat/reset", cc.ResetChat)
	router.GET("/api/v1/chat/intents", cc.GetSupportedIntents)
	router.POST("/api/v1/inquiries", ic.HandleInquiry)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleChat(t *testing.T) {
	router := newTestRouter(t)

	t.Run("valid message", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/chat", `{"message":"hello","session_id":"s1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var msg models.ChatMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, models.SenderBot, msg.Sender)
		assert.Equal(t, "s1", msg.SessionID)
		assert.NotEmpty(t, msg.Text)
	})

	t.Run("missing session id", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/chat", `{"message":"hello"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/chat", `{"message":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetGreeting(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/chat/greeting?page=/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var greeting models.GreetingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &greeting))
	assert.NotEmpty(t, greeting.Text)
	assert.NotEmpty(t, greeting.SessionID)
	assert.Equal(t, "/products", greeting.Page)
}

func TestResetChat(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/chat/reset", `{"session_id":"s1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/chat/reset", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSupportedIntents(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/chat/intents", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Intents []string `json:"intents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Intents, "greeting")
	assert.Contains(t, body.Intents, "emergency")
}

func TestHandleInquiry(t *testing.T) {
	router := newTestRouter(t)

	t.Run("valid product inquiry", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/inquiries",
			`{"type":"product_inquiry","full_name":"Ada Obi","location":"Ibadan","animal_type":"Poultry","product_name":"Maxitet"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.InquiryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/2348136972328?text="))
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/inquiries", `{"type":"product_inquiry"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("type specific validation", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/inquiries",
			`{"type":"emergency","full_name":"Ada Obi","location":"Kano"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package routes

import (
	"github.com/gin-gonic/gin"

	"agvet-chatbot-backend/controllers"
	"agvet-chatbot-backend/services"
)

// Deps are the shared dependencies route handlers are built from.
type Deps struct {
	ChatbotService  *services.ChatbotService
	WhatsAppService *services.WhatsAppService
	WSController    *controllers.WebSocketController
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	chatbotController := controllers.NewChatbotController(deps.ChatbotService)
	inquiryController := controllers.NewInquiryController(deps.WhatsAppService)

	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/chat/greeting", chatbotController.GetGreeting)
		public.POST("/chat/reset", chatbotController.ResetChat)
		public.GET("/chat/intents", chatbotController.GetSupportedIntents)

		public.POST("/inquiries", inquiryController.HandleInquiry)

		// WebSocket for real-time chat
		public.GET("/ws", deps.WSController.HandleWebSocket)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}

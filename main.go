package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agvet-chatbot-backend/chatbot"
	"agvet-chatbot-backend/config"
	"agvet-chatbot-backend/controllers"
	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/middleware"
	"agvet-chatbot-backend/routes"
	"agvet-chatbot-backend/services"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cfg := config.Get()
	appLog := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the rule engine
	engineOpts := []chatbot.Option{
		chatbot.WithSessionTTL(cfg.Chat.SessionTTL),
	}
	if cfg.Chat.MatchMode == "token" {
		engineOpts = append(engineOpts, chatbot.WithMatchMode(chatbot.MatchToken))
	}
	if cfg.Chat.Seed >= 0 {
		engineOpts = append(engineOpts, chatbot.WithSeed(cfg.Chat.Seed))
	}
	engine, err := chatbot.New(engineOpts...)
	if err != nil {
		log.Fatalf("Failed to load chatbot rule tables: %v", err)
	}

	// Services and controllers
	chatbotService := services.NewChatbotService(engine, cfg.Chat, appLog)
	whatsappService := services.NewWhatsAppService(cfg.Business, appLog)
	wsController := controllers.NewWebSocketController(chatbotService, appLog)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.Security))
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":          "ok",
			"timestamp":       time.Now(),
			"active_sessions": engine.ActiveSessions(),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup all routes
	routes.SetupRoutes(router, routes.Deps{
		ChatbotService:  chatbotService,
		WhatsAppService: whatsappService,
		WSController:    wsController,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLog.Info("server starting", map[string]interface{}{
			"port":        cfg.Port,
			"environment": cfg.Environment,
		})

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("server forced to shutdown", map[string]interface{}{"error": err.Error()})
	}

	appLog.Info("server exited", nil)
}

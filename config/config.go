package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Chatbot engine
	Chat ChatConfig

	// Business contact details
	Business BusinessConfig

	// Logging
	Log LogConfig

	// Security
	Security SecurityConfig
}

type ChatConfig struct {
	// Think delay shaping. The bot pauses before replying so the widget
	// feels less robotic: base + per-char (capped) + random jitter.
	ThinkDelayEnabled bool
	ThinkDelayBase    time.Duration
	ThinkDelayPerChar time.Duration
	ThinkDelayCap     time.Duration
	ThinkDelayJitter  time.Duration

	SessionTTL time.Duration

	// MatchMode is "substring" or "token".
	MatchMode string

	// Seed fixes the response-template RNG when >= 0. -1 means random.
	Seed int64
}

type BusinessConfig struct {
	CompanyName   string
	WhatsAppPhone string // digits only, international format
	EmergencyLine string // display format for chat responses
}

type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

type SecurityConfig struct {
	AllowedOrigins []string
	TrustedProxies []string
}

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Chat: ChatConfig{
			ThinkDelayEnabled: getEnvAsBool("CHAT_THINK_DELAY_ENABLED", true),
			ThinkDelayBase:    getEnvAsDuration("CHAT_THINK_DELAY_BASE", "600ms"),
			ThinkDelayPerChar: getEnvAsDuration("CHAT_THINK_DELAY_PER_CHAR", "10ms"),
			ThinkDelayCap:     getEnvAsDuration("CHAT_THINK_DELAY_CAP", "800ms"),
			ThinkDelayJitter:  getEnvAsDuration("CHAT_THINK_DELAY_JITTER", "400ms"),
			SessionTTL:        getEnvAsDuration("CHAT_SESSION_TTL", "30m"),
			MatchMode:         getEnv("CHAT_MATCH_MODE", "substring"),
			Seed:              getEnvAsInt64("CHAT_RANDOM_SEED", -1),
		},

		Business: BusinessConfig{
			CompanyName:   getEnv("COMPANY_NAME", "Divine Agvet"),
			WhatsAppPhone: getEnv("WHATSAPP_PHONE", "2348136972328"),
			EmergencyLine: getEnv("EMERGENCY_LINE", "+234 813 697 2328"),
		},

		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},

		Security: SecurityConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
	}

	// Validate configuration
	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	// Simple comma-separated parsing
	return strings.Split(value, ",")
}

func validate() error {
	if cfg.Business.WhatsAppPhone == "" {
		return fmt.Errorf("WhatsApp phone number is required")
	}
	for _, r := range cfg.Business.WhatsAppPhone {
		if r < '0' || r > '9' {
			return fmt.Errorf("WhatsApp phone number must contain digits only, got %q", cfg.Business.WhatsAppPhone)
		}
	}

	switch cfg.Chat.MatchMode {
	case "substring", "token":
	default:
		return fmt.Errorf("invalid CHAT_MATCH_MODE %q, expected substring or token", cfg.Chat.MatchMode)
	}

	if cfg.Chat.SessionTTL <= 0 {
		return fmt.Errorf("CHAT_SESSION_TTL must be positive")
	}

	return nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())
	cfg := Get()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "substring", cfg.Chat.MatchMode)
	assert.Equal(t, 30*time.Minute, cfg.Chat.SessionTTL)
	assert.Equal(t, int64(-1), cfg.Chat.Seed)
	assert.True(t, cfg.Chat.ThinkDelayEnabled)
	assert.Equal(t, "2348136972328", cfg.Business.WhatsAppPhone)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CHAT_MATCH_MODE", "token")
	t.Setenv("CHAT_SESSION_TTL", "5m")
	t.Setenv("CHAT_RANDOM_SEED", "42")
	t.Setenv("CHAT_THINK_DELAY_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://divineagvet.com,https://www.divineagvet.com")

	require.NoError(t, Load())
	cfg := Get()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "token", cfg.Chat.MatchMode)
	assert.Equal(t, 5*time.Minute, cfg.Chat.SessionTTL)
	assert.Equal(t, int64(42), cfg.Chat.Seed)
	assert.False(t, cfg.Chat.ThinkDelayEnabled)
	assert.Equal(t, []string{"https://divineagvet.com", "https://www.divineagvet.com"}, cfg.Security.AllowedOrigins)
}

func TestLoadValidation(t *testing.T) {
	t.Run("invalid match mode", func(t *testing.T) {
		t.Setenv("CHAT_MATCH_MODE", "fuzzy")
		assert.Error(t, Load())
	})

	t.Run("non-numeric phone", func(t *testing.T) {
		t.Setenv("WHATSAPP_PHONE", "+234-813")
		assert.Error(t, Load())
	})

	t.Run("bad duration falls back to default", func(t *testing.T) {
		t.Setenv("CHAT_SESSION_TTL", "not-a-duration")
		require.NoError(t, Load())
		assert.Equal(t, 30*time.Minute, Get().Chat.SessionTTL)
	})
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agvet-chatbot-backend/chatbot"
	"agvet-chatbot-backend/config"
	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/models"
)

func newTestChatbotService(t *testing.T, cfg config.ChatConfig) *ChatbotService {
	t.Helper()
	engine, err := chatbot.New(chatbot.WithSeed(1))
	require.NoError(t, err)
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	return NewChatbotService(engine, cfg, logger.NewNop())
}

func TestProcessMessage(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{ThinkDelayEnabled: false})

	msg, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "hello",
		SessionID: "s1",
		Page:      "/",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SenderBot, msg.Sender)
	assert.Equal(t, "s1", msg.SessionID)
	assert.NotEmpty(t, msg.Text)
	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestProcessMessageCancelledContext(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{
		ThinkDelayEnabled: true,
		ThinkDelayBase:    5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProcessMessage(ctx, models.ChatRequest{
		Message:   "hello",
		SessionID: "s1",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessMessageCancellationKeepsState(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{
		ThinkDelayEnabled: true,
		ThinkDelayBase:    5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.ProcessMessage(ctx, models.ChatRequest{Message: "i keep chickens", SessionID: "s1"})

	// The turn was aborted after the engine recorded it, so the next turn
	// still sees the animal context.
	svc.cfg.ThinkDelayEnabled = false
	msg, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "would that work for them?",
		SessionID: "s1",
	})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "poultry")
}

func TestGetGreeting(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{})

	t.Run("generates a session id when missing", func(t *testing.T) {
		greeting := svc.GetGreeting("", "/")
		assert.NotEmpty(t, greeting.SessionID)
		_, err := uuid.Parse(greeting.SessionID)
		assert.NoError(t, err)
		assert.NotEmpty(t, greeting.Text)
	})

	t.Run("keeps the caller's session id", func(t *testing.T) {
		greeting := svc.GetGreeting("widget-7", "/products")
		assert.Equal(t, "widget-7", greeting.SessionID)
		assert.Equal(t, "/products", greeting.Page)
	})
}

func TestResetSession(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{ThinkDelayEnabled: false})

	svc.ProcessMessage(context.Background(), models.ChatRequest{Message: "i keep chickens", SessionID: "s1"})
	svc.ResetSession("s1")

	// After a reset the next unknown turn has no animal context to lean on.
	msg, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "would that work for them?",
		SessionID: "s1",
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.Text, "poultry")
}

func TestSupportedIntents(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{})

	names := svc.SupportedIntents()
	assert.Contains(t, names, "greeting")
	assert.Contains(t, names, "emergency")
	assert.Contains(t, names, "vaccination")
}

func TestThinkDelayShape(t *testing.T) {
	svc := newTestChatbotService(t, config.ChatConfig{
		ThinkDelayEnabled: true,
		ThinkDelayBase:    100 * time.Millisecond,
		ThinkDelayPerChar: 10 * time.Millisecond,
		ThinkDelayCap:     50 * time.Millisecond,
	})

	// Per-char cost is capped, so a huge message stays near base + cap.
	delay := svc.thinkDelay(string(make([]byte, 10000)))
	assert.Equal(t, 150*time.Millisecond, delay)

	svc.cfg.ThinkDelayEnabled = false
	assert.Zero(t, svc.thinkDelay("hello"))
}

package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"agvet-chatbot-backend/chatbot"
	"agvet-chatbot-backend/config"
	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/metrics"
	"agvet-chatbot-backend/models"
)

// ChatbotService wraps the rule engine with the concerns a transport needs:
// a human-feeling think delay, message records, metrics and logging.
type ChatbotService struct {
	engine *chatbot.Engine
	cfg    config.ChatConfig
	log    logger.Logger

	jitterMu sync.Mutex
	jitter   *rand.Rand
}

func NewChatbotService(engine *chatbot.Engine, cfg config.ChatConfig, log logger.Logger) *ChatbotService {
	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &ChatbotService{
		engine: engine,
		cfg:    cfg,
		log:    log,
		jitter: rand.New(rand.NewSource(seed)),
	}
}

// ProcessMessage runs one user turn through the engine. The think delay is
// applied before responding; a cancelled context aborts only this turn, the
// session state keeps whatever the engine already recorded.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatMessage, error) {
	start := time.Now()

	resp := s.engine.Respond(req.SessionID, req.Message, req.Page)

	if delay := s.thinkDelay(req.Message); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	metrics.ChatMessagesTotal.WithLabelValues(string(resp.Intent)).Inc()
	metrics.ResponseDuration.Observe(time.Since(start).Seconds())
	metrics.ActiveSessions.Set(float64(s.engine.ActiveSessions()))
	if resp.Form != nil {
		metrics.LeadFormsTotal.Inc()
	}
	if resp.Card != nil {
		metrics.DiagnosticCardsTotal.WithLabelValues(string(resp.Card.Severity)).Inc()
	}

	s.log.Info("chat message processed", map[string]interface{}{
		"session_id": req.SessionID,
		"intent":     resp.Intent,
		"confidence": resp.Confidence,
		"emergency":  resp.IsEmergency,
	})

	return s.botMessage(req.SessionID, resp), nil
}

// GetGreeting resets the session and returns the page-aware opening message.
func (s *ChatbotService) GetGreeting(sessionID, page string) *models.GreetingResponse {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &models.GreetingResponse{
		Text:      s.engine.Greet(sessionID, page),
		SessionID: sessionID,
		Page:      page,
	}
}

// ResetSession clears all conversation state for the session.
func (s *ChatbotService) ResetSession(sessionID string) {
	s.engine.Reset(sessionID)
	metrics.ActiveSessions.Set(float64(s.engine.ActiveSessions()))
	s.log.Info("session reset", map[string]interface{}{"session_id": sessionID})
}

// SupportedIntents lists every intent name the rule tables know.
func (s *ChatbotService) SupportedIntents() []string {
	intents := s.engine.Intents()
	names := make([]string, 0, len(intents))
	for _, in := range intents {
		names = append(names, in.Name)
	}
	return names
}

func (s *ChatbotService) botMessage(sessionID string, resp *models.ChatResponse) *models.ChatMessage {
	return &models.ChatMessage{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Text:        resp.Text,
		Sender:      models.SenderBot,
		Timestamp:   time.Now(),
		Link:        resp.Link,
		LinkText:    resp.LinkText,
		Card:        resp.Card,
		Form:        resp.Form,
		IsEmergency: resp.IsEmergency,
	}
}

// thinkDelay scales with message length so long questions feel considered.
func (s *ChatbotService) thinkDelay(message string) time.Duration {
	if !s.cfg.ThinkDelayEnabled {
		return 0
	}
	perChar := s.cfg.ThinkDelayPerChar * time.Duration(len(message))
	if perChar > s.cfg.ThinkDelayCap {
		perChar = s.cfg.ThinkDelayCap
	}
	delay := s.cfg.ThinkDelayBase + perChar
	if s.cfg.ThinkDelayJitter > 0 {
		s.jitterMu.Lock()
		delay += time.Duration(s.jitter.Int63n(int64(s.cfg.ThinkDelayJitter)))
		s.jitterMu.Unlock()
	}
	return delay
}

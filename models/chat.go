package models

import (
	"time"
)

type MessageIntent string

// Well-known intents referenced outside the rule tables. The full intent set
// lives in the chatbot data assets; these are the ones code branches on.
const (
	IntentGreeting    MessageIntent = "greeting"
	IntentFarewell    MessageIntent = "farewell"
	IntentFarmHelp    MessageIntent = "farm_help"
	IntentEmergency   MessageIntent = "emergency"
	IntentPricing     MessageIntent = "pricing"
	IntentOrdering    MessageIntent = "ordering"
	IntentPartnership MessageIntent = "partnership"
	IntentUnknown     MessageIntent = "unknown"
)

type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderBot  MessageSender = "bot"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ChatRequest is the payload a widget sends for each user turn.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
	Page      string `json:"page,omitempty"`
}

// ChatResponse is one bot turn. At most one of Card or Form is set.
type ChatResponse struct {
	Text        string              `json:"text"`
	Intent      MessageIntent       `json:"intent"`
	Confidence  float64             `json:"confidence"`
	Link        string              `json:"link,omitempty"`
	LinkText    string              `json:"link_text,omitempty"`
	Card        *DiagnosticCardData `json:"card,omitempty"`
	Form        *LeadGenFormData    `json:"form,omitempty"`
	IsEmergency bool                `json:"is_emergency,omitempty"`
}

// ChatMessage is the presentation-facing record built around a request or
// response. Messages are never mutated after creation and never persisted.
type ChatMessage struct {
	ID          string              `json:"id"`
	SessionID   string              `json:"session_id"`
	Text        string              `json:"text"`
	Sender      MessageSender       `json:"sender"`
	Timestamp   time.Time           `json:"timestamp"`
	Link        string              `json:"link,omitempty"`
	LinkText    string              `json:"link_text,omitempty"`
	Card        *DiagnosticCardData `json:"card,omitempty"`
	Form        *LeadGenFormData    `json:"form,omitempty"`
	IsEmergency bool                `json:"is_emergency,omitempty"`
}

// DiagnosticCardData is the structured payload produced when a turn mentions
// both an animal and symptoms. Rendered by the widget as a diagnostic card.
type DiagnosticCardData struct {
	Type            string           `json:"type"` // always "diagnostic"
	Title           string           `json:"title"`
	Symptom         string           `json:"symptom"`
	ProbableCause   string           `json:"probable_cause"`
	Severity        Severity         `json:"severity"`
	Confidence      float64          `json:"confidence"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	Product string `json:"product"`
	Action  string `json:"action"`
}

// LeadGenFormData is the structured payload produced on the high purchase
// intent branch. The widget renders it as an inline lead-capture form whose
// submission is handed off to WhatsApp.
type LeadGenFormData struct {
	Type        string      `json:"type"` // always "lead_capture"
	Title       string      `json:"title"`
	Fields      []FormField `json:"fields"`
	SubmitLabel string      `json:"submit_label"`
	Context     string      `json:"context"`
}

type FormField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // "text", "tel" or "select"
	Options []string `json:"options,omitempty"`
}

// GreetingResponse is returned when a widget opens or resets a conversation.
type GreetingResponse struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
	Page      string `json:"page,omitempty"`
}

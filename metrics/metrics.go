package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatMessagesTotal counts processed chat messages by resolved intent.
	ChatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_messages_total",
		Help: "Total chat messages processed, labelled by intent",
	}, []string{"intent"})

	// ResponseDuration tracks end-to-end message handling time, think
	// delay included.
	ResponseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatbot_response_duration_seconds",
		Help:    "Chat message handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// LeadFormsTotal counts lead capture forms offered to visitors.
	LeadFormsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_lead_forms_total",
		Help: "Total lead capture forms generated",
	})

	// DiagnosticCardsTotal counts diagnostic cards shown, by severity.
	DiagnosticCardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_diagnostic_cards_total",
		Help: "Total diagnostic cards generated, labelled by severity",
	}, []string{"severity"})

	// InquiryLinksTotal counts WhatsApp deep links built, by inquiry type.
	InquiryLinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_inquiry_links_total",
		Help: "Total WhatsApp inquiry links built, labelled by type",
	}, []string{"type"})

	// ActiveWebSocketConnections gauges currently open chat sockets.
	ActiveWebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatbot_websocket_connections",
		Help: "Currently open websocket chat connections",
	})

	// ActiveSessions gauges conversation sessions held in memory.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatbot_active_sessions",
		Help: "Conversation sessions currently held in memory",
	})
)

package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"agvet-chatbot-backend/config"
	"agvet-chatbot-backend/logger"
	"agvet-chatbot-backend/metrics"
	"agvet-chatbot-backend/models"
)

const messageDivider = "─────────────────"

// WhatsAppService formats inquiry submissions into wa.me deep links. Nothing
// is sent from the backend; the browser opens the link and WhatsApp takes
// over with the message prefilled.
type WhatsAppService struct {
	phone   string
	company string
	log     logger.Logger
	now     func() time.Time
}

func NewWhatsAppService(cfg config.BusinessConfig, log logger.Logger) *WhatsAppService {
	return &WhatsAppService{
		phone:   cfg.WhatsAppPhone,
		company: cfg.CompanyName,
		log:     log,
		now:     time.Now,
	}
}

// BuildInquiryLink validates the type-specific fields and returns the deep
// link for the submitted inquiry.
func (s *WhatsAppService) BuildInquiryLink(req models.InquiryRequest) (*models.InquiryResponse, error) {
	header, body, err := s.formatInquiry(req)
	if err != nil {
		return nil, err
	}

	full := header + "\n\n" + body + "\n\n" + s.footer(req.Page, req.Section)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", s.phone, url.QueryEscape(full))

	metrics.InquiryLinksTotal.WithLabelValues(string(req.Type)).Inc()
	s.log.Info("inquiry link built", map[string]interface{}{
		"type": req.Type,
		"page": req.Page,
	})

	return &models.InquiryResponse{WhatsAppURL: link, Type: req.Type}, nil
}

func (s *WhatsAppService) formatInquiry(req models.InquiryRequest) (header, body string, err error) {
	switch req.Type {
	case models.InquiryProduct:
		header = "📦 *PRODUCT INQUIRY*"
		body = joinLines(
			line("Product", orDefault(req.ProductName, "General Products")),
			line("Category", orDefault(req.ProductCategory, "N/A")),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Animal Type", req.AnimalType),
			optLine("Quantity Needed", req.Quantity),
			optLine("Additional Info", req.Message),
		)
		if req.AnimalType == "" {
			err = fmt.Errorf("animal_type is required for %s", req.Type)
		}

	case models.InquiryService:
		header = "🩺 *SERVICE REQUEST*"
		body = joinLines(
			line("Service", orDefault(req.ServiceName, "General Veterinary Service")),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Animal Type", req.AnimalType),
			optLine("Number of Animals", req.NumberOfAnimals),
			line("Issue", req.IssueDescription),
		)
		if req.AnimalType == "" || req.IssueDescription == "" {
			err = fmt.Errorf("animal_type and issue_description are required for %s", req.Type)
		}

	case models.InquiryEmergency:
		header = "🚨 *VETERINARY EMERGENCY*"
		body = joinLines(
			"*URGENT — Immediate Attention Required*",
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Animal Type", req.AnimalType),
			optLine("Animals Affected", req.NumberOfAffected),
			line("Symptoms", req.Symptoms),
		)
		if req.AnimalType == "" || req.Symptoms == "" {
			err = fmt.Errorf("animal_type and symptoms are required for %s", req.Type)
		}

	case models.InquiryConsultation:
		header = "💬 *CONSULTATION REQUEST*"
		body = joinLines(
			line("Topic", req.Topic),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Animal Type", req.AnimalType),
			optLine("Preferred Time", req.PreferredTime),
			optLine("Details", req.Message),
		)
		if req.AnimalType == "" || req.Topic == "" {
			err = fmt.Errorf("animal_type and topic are required for %s", req.Type)
		}

	case models.InquiryPartnership:
		header = "🤝 *PARTNERSHIP INQUIRY*"
		body = joinLines(
			line("Business", req.BusinessName),
			line("Business Type", req.BusinessType),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			optLine("Message", req.Message),
		)
		if req.BusinessName == "" || req.BusinessType == "" {
			err = fmt.Errorf("business_name and business_type are required for %s", req.Type)
		}

	case models.InquiryLeadCapture:
		header = "💰 *PRICE QUOTE REQUEST*"
		body = joinLines(
			line("Interest", orDefault(req.ProductName, "General Products")),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Animal Type", req.AnimalType),
			optLine("Message", req.Message),
		)
		if req.AnimalType == "" {
			err = fmt.Errorf("animal_type is required for %s", req.Type)
		}

	case models.InquiryGeneral:
		header = "📩 *GENERAL INQUIRY*"
		body = joinLines(
			line("Subject", req.Subject),
			messageDivider,
			line("Name", req.FullName),
			optLine("Phone", req.Phone),
			line("Location", req.Location),
			line("Message", req.Message),
		)
		if req.Subject == "" || req.Message == "" {
			err = fmt.Errorf("subject and message are required for %s", req.Type)
		}

	default:
		err = fmt.Errorf("unsupported inquiry type %q", req.Type)
	}

	return header, body, err
}

func (s *WhatsAppService) footer(page, section string) string {
	loc := page
	if loc == "" {
		loc = "Website"
	}
	if section != "" {
		loc += " → " + section
	}
	return joinLines(
		messageDivider,
		fmt.Sprintf("📍 *Page:* %s", loc),
		fmt.Sprintf("🕐 *Sent:* %s", s.now().Format("Jan 2, 2006, 3:04 PM")),
		fmt.Sprintf("_via %s Website_", s.company),
	)
}

func line(label, value string) string {
	return fmt.Sprintf("*%s:* %s", label, value)
}

func optLine(label, value string) string {
	if value == "" {
		return ""
	}
	return line(label, value)
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func joinLines(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

package chatbot

import (
	"fmt"
	"strings"
	"time"
)

// EmergencyPhone appears verbatim in emergency greetings and inquiry links.
const EmergencyPhone = "+234 813 697 2328"

// greetingText returns the page-aware opening message. The emergency page
// greeting is the same at any hour; everything else carries a time-of-day
// salutation.
func greetingText(page string, now time.Time) string {
	timeGreeting := "Hello"
	switch hour := now.Hour(); {
	case hour < 12:
		timeGreeting = "Good morning"
	case hour < 18:
		timeGreeting = "Good afternoon"
	default:
		timeGreeting = "Good evening"
	}

	switch {
	case strings.Contains(page, "products"):
		return fmt.Sprintf("%s! 👋 I see you're browsing our products. I can help you find the perfect NAFDAC-approved solution for your animals.\n\nTell me — what animals do you keep, and what are you looking for?", timeGreeting)
	case strings.Contains(page, "emergency"):
		return "🚨 **EMERGENCY DETECTED** — I see you're on our emergency page.\n\nPlease describe what's happening RIGHT NOW and I'll provide immediate guidance while alerting our vet team. Every second counts!\n\n📞 You can also call directly: " + EmergencyPhone
	case strings.Contains(page, "services"):
		return fmt.Sprintf("%s! 👋 Welcome to our services page. I can help you understand what we offer and recommend the right service for your farm.\n\nAre you looking for veterinary consultation, vaccination programs, or product supply?", timeGreeting)
	case strings.Contains(page, "about"):
		return fmt.Sprintf("%s! 👋 Want to know more about Divine Agvet? We've been serving Nigerian farmers for 17+ years.\n\nFeel free to ask me anything about our company, our mission, or how we can help your farm succeed!", timeGreeting)
	case strings.Contains(page, "contact"):
		return fmt.Sprintf("%s! 👋 Looking to reach us? I can help you right here, or connect you with our team.\n\n📞 WhatsApp: %s (under 5 min response)\n\nWhat do you need help with?", timeGreeting, EmergencyPhone)
	case strings.Contains(page, "faq"):
		return fmt.Sprintf("%s! 👋 I see you're looking at FAQs. I might be able to answer your questions faster!\n\nJust ask me anything about products, orders, delivery, or animal health.", timeGreeting)
	default:
		return fmt.Sprintf("%s! 👋 I'm **Agvet AI** — your intelligent veterinary assistant, powered by 17 years of Divine Agvet expertise.\n\nI can help with:\n🐔 Poultry & livestock health\n💊 Product recommendations\n🚨 Emergency vet support\n📦 Orders & delivery\n\nWhat can I help you with today?", timeGreeting)
	}
}

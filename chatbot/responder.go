package chatbot

import (
	"fmt"
	"strings"

	"agvet-chatbot-backend/models"
)

// Intents that signal buying interest; combined with a high-intent phrase
// they trigger the lead-capture form instead of prose.
var leadGenIntents = map[string]bool{
	"pricing":         true,
	"ordering":        true,
	"partnership":     true,
	"product_viramax": true,
	"product_maxitet": true,
}

var highIntentPhrases = []string{"how much", "buy", "cost", "order"}

// responder turns a classified turn into a reply. pick selects an index in
// [0,n) and is injected so tests can pin random template selection.
type responder struct {
	tables *Tables
	pick   func(n int) int
}

// build walks the decision branches in order; the first match wins.
// st has already been updated for the current turn, so MessageCount includes
// this message and LastIntent reflects the current classification.
func (r *responder) build(message, intent, page string, st *ConversationState, animals, symptoms []string) *models.ChatResponse {
	lower := strings.ToLower(message)

	// High purchase intent: hand over to sales via a lead-capture form.
	if leadGenIntents[intent] && st.MessageCount > 1 && containsAny(lower, highIntentPhrases) {
		return r.buildLeadCapture(intent)
	}

	if intent != IntentUnknown && st.MessageCount > 1 {
		// Animal plus symptoms in the same turn: targeted assessment.
		if len(animals) > 0 && len(symptoms) > 0 {
			return r.buildDiagnostic(animals, symptoms)
		}
		// Animal named right after a general help request.
		if len(animals) > 0 && st.LastIntent == "farm_help" {
			return r.buildAnimalFollowUp(animals)
		}
	}

	if templates, ok := r.tables.Knowledge[intent]; ok {
		return r.buildFromKnowledge(intent, page, st, templates)
	}

	return r.buildFallback(lower, st)
}

func (r *responder) buildLeadCapture(intent string) *models.ChatResponse {
	return &models.ChatResponse{
		Text: "I can definitely help you with that! As an AI agent, I can connect you directly with our sales team for the best factory rates.\n\nCould you fill these quick details so they can contact you immediately with a quote?",
		Form: &models.LeadGenFormData{
			Type:        "lead_capture",
			Title:       "Get Immediate Price Quote",
			SubmitLabel: "Get Quote via WhatsApp",
			Context:     fmt.Sprintf("Quote Request for %s", intent),
			Fields: []models.FormField{
				{Name: "name", Label: "Your Name", Type: "text"},
				{Name: "location", Label: "Your Location (State)", Type: "text"},
				{Name: "animal", Label: "Animal Type", Type: "select", Options: []string{"Poultry", "Cattle", "Goats/Sheep", "Pigs", "Pets", "Other"}},
			},
		},
	}
}

// Symptom groups that map to a diagnostic card. Severity and product
// recommendations are table entries, not computed values.
var (
	respiratorySigns = []string{"cough", "sneez", "breathing", "respiratory", "discharge", "mucus"}
	diarrheaSigns    = []string{"diarrhea", "diarrhoea", "bloody", "bleeding"}
	parasiteSigns    = []string{"scratch", "itch", "rash", "tick", "lice", "flea"}
	malaiseSigns     = []string{"not eating", "weak", "letharg", "loss of appetite"}

	respiratoryCard = models.DiagnosticCardData{
		Type: "diagnostic", Title: "Respiratory Health Alert",
		Symptom: "Respiratory Distress", ProbableCause: "CRD or Pneumonia",
		Severity: models.SeverityHigh, Confidence: 0.89,
		Recommendations: []models.Recommendation{
			{Product: "Maxitet", Action: "Treats bacterial infection"},
			{Product: "Maxi Vitaconc", Action: "Boosts immunity recovery"},
		},
	}
	coccidiosisCard = models.DiagnosticCardData{
		Type: "diagnostic", Title: "Coccidiosis Warning",
		Symptom: "Bloody Diarrhea", ProbableCause: "Eimeria (Coccidia)",
		Severity: models.SeverityCritical, Confidence: 0.95,
		Recommendations: []models.Recommendation{
			{Product: "Maxicocc", Action: "Stops bleeding fast"},
			{Product: "Maxi Vitaconc", Action: "Restores lost vitamins"},
		},
	}
	digestiveCard = models.DiagnosticCardData{
		Type: "diagnostic", Title: "Digestive Disturbance",
		Symptom: "Diarrhea / Scours", ProbableCause: "Bacterial Enteritis",
		Severity: models.SeverityMedium, Confidence: 0.75,
		Recommendations: []models.Recommendation{
			{Product: "Maxitet", Action: "Broad spectrum antibiotic"},
			{Product: "Multi-Vitamins", Action: "Rehydration support"},
		},
	}
	parasiteCard = models.DiagnosticCardData{
		Type: "diagnostic", Title: "Parasite Detected",
		Symptom: "Skin / External Parasites", ProbableCause: "Ticks, Lice, or Mites",
		Severity: models.SeverityMedium, Confidence: 0.92,
		Recommendations: []models.Recommendation{
			{Product: "Ectomax Spray", Action: "Kills parasites on contact"},
		},
	}
	malaiseCard = models.DiagnosticCardData{
		Type: "diagnostic", Title: "General Malaise",
		Symptom: "Loss of Appetite / Weakness", ProbableCause: "Stress or Early Infection",
		Severity: models.SeverityMedium, Confidence: 0.65,
		Recommendations: []models.Recommendation{
			{Product: "Maxi Vitaconc", Action: "Immediate energy boost"},
			{Product: "Viramax", Action: "Immune system support"},
		},
	}
)

func (r *responder) buildDiagnostic(animals, symptoms []string) *models.ChatResponse {
	animalStr := strings.Join(animals, " and ")
	symptomStr := strings.Join(symptoms, ", ")

	text := fmt.Sprintf("🔍 **Quick Assessment for your %s:**\n\nI've analyzed the symptoms: *%s*.", animalStr, symptomStr)
	var card *models.DiagnosticCardData

	switch {
	case anyIn(symptoms, respiratorySigns):
		text += "\n\nBased on these signs, I suspect a **Respiratory Infection**."
		card = cardCopy(respiratoryCard)
	case anyIn(symptoms, diarrheaSigns):
		if contains(animals, "poultry") && (contains(symptoms, "bloody") || contains(symptoms, "bleeding")) {
			text += "\n\n⚠️ **Bloody diarrhea is a classic sign of Coccidiosis.** This requires immediate attention."
			card = cardCopy(coccidiosisCard)
		} else {
			text += "\n\nDigestive issues can dehydrate animals quickly."
			card = cardCopy(digestiveCard)
		}
	case anyIn(symptoms, parasiteSigns):
		text += "\n\nParasites are likely the cause."
		card = cardCopy(parasiteCard)
	case anyIn(symptoms, malaiseSigns):
		text += "\n\nGeneral weakness is a warning sign of many potential issues."
		card = cardCopy(malaiseCard)
	}

	text += "\n\n⚠️ *This AI assessment is for guidance only. For critical cases, consult a vet.*"

	return &models.ChatResponse{
		Text:     text,
		Link:     "/contact",
		LinkText: "Consult a Vet",
		Card:     card,
	}
}

var animalFollowUps = map[string]string{
	"poultry": "Great, you're keeping poultry! 🐔 Here's what I can help with:\n\n• **Disease treatment** — Tell me the symptoms\n• **Vaccination schedule** — I'll create one for you\n• **Feeding plans** — Broilers, layers, or breeders\n• **Product recommendations** — Targeted solutions\n\nWhat's the main challenge you're facing with your birds?",
	"cattle":  "You have cattle! 🐄 I can assist with:\n\n• **Health programs** — Vaccination & deworming schedules\n• **Disease diagnosis** — Describe symptoms\n• **Tick control** — Essential in Nigeria's climate\n• **Nutrition advice** — For dairy or beef production\n\nWhat do you need help with?",
	"goat":    "Goat farming! 🐐 I can help with:\n\n• **Disease treatment** — Tell me what's wrong\n• **Deworming schedules** — Critical for goats\n• **Feeding optimization** — For growth or breeding\n• **PPR vaccination** — Annual protection\n\nWhat's going on with your goats?",
	"sheep":   "Sheep farming! 🐑 I can assist with:\n\n• **Health management** — Vaccination & deworming\n• **Parasite control** — Internal and external\n• **Breeding advice** — Optimize your flock\n\nWhat specific help do you need?",
	"pig":     "Piggery! 🐷 I can help with:\n\n• **Health management** — Disease prevention\n• **Feeding programs** — For optimal growth\n• **Housing advice** — Best practices\n\nWhat's happening with your pigs?",
	"dog":     "Pet care! 🐕 I can help with:\n\n• **Tick & flea treatment** — Ectomax Spray\n• **Deworming** — Regular schedules\n• **Vaccination** — Annual boosters\n\nWhat's going on with your dog?",
	"cat":     "Cat care! 🐱 I can assist with:\n\n• **Parasite treatment** — Fleas, ticks, worms\n• **Vaccination** — Core vaccines\n• **General health** — Nutrition and wellness\n\nWhat do you need help with?",
	"fish":    "Fish farming! 🐟 I can help with:\n\n• **Water quality** — pH, dissolved oxygen\n• **Disease prevention** — Common fish diseases\n• **Feed optimization** — Growth rates\n\nWhat's your main concern?",
}

func (r *responder) buildAnimalFollowUp(animals []string) *models.ChatResponse {
	animal := animals[0]
	text, ok := animalFollowUps[animal]
	if !ok {
		text = fmt.Sprintf("I see you're keeping %s! Tell me more about the challenge you're facing, and I'll provide specific advice.", animal)
	}
	return &models.ChatResponse{
		Text:     text,
		Link:     "/services",
		LinkText: "Browse Expert Services",
	}
}

func (r *responder) buildFromKnowledge(intent, page string, st *ConversationState, templates []ResponseTemplate) *models.ChatResponse {
	tpl := templates[r.pick(len(templates))]
	text := tpl.Text

	switch {
	case strings.Contains(page, "products") && !strings.HasPrefix(intent, "product_"):
		text += "\n\n💡 *I see you're browsing our products. Want me to recommend something specific for your needs?*"
	case strings.Contains(page, "emergency") && intent != "emergency":
		text += "\n\n🚨 *If this is an emergency, don't hesitate — our vets are available 24/7 for immediate assistance.*"
	case intent == "emergency" || strings.Contains(page, "emergency"):
		// Emergency replies skip further decoration.
		return &models.ChatResponse{
			Text:        text,
			Link:        tpl.Link,
			LinkText:    tpl.LinkText,
			IsEmergency: true,
		}
	}

	if len(st.MentionedAnimals) > 0 &&
		!strings.Contains(intent, "poultry") && !strings.Contains(intent, "cattle") && !strings.Contains(intent, "goat") {
		animalStr := strings.Join(st.MentionedAnimals, ", ")
		text += fmt.Sprintf("\n\n💡 *Since you mentioned %s, I can provide specific advice tailored to those animals anytime!*", animalStr)
	}

	return &models.ChatResponse{
		Text:     text,
		Link:     tpl.Link,
		LinkText: tpl.LinkText,
	}
}

var questionPrefixes = []string{"how", "what", "why", "when", "where", "can", "do", "is", "should"}

var fallbackPrompts = []string{
	"I hear you! To give you the best possible advice, could you tell me:\n• **What animals** you're working with?\n• **What challenge** you're facing?\n\nThe more details you share, the better I can help. I'm trained on 17+ years of Divine Agvet's veterinary expertise! 🌿",
	"Thanks for sharing! I want to make sure I give you the most useful response. Could you elaborate a bit?\n\nFor example:\n• \"My chickens are coughing\" → I'll recommend specific treatments\n• \"I need products for goats\" → I'll show you what we have\n• \"How do I vaccinate my layers?\" → I'll give you a full schedule\n\nI'm here to help! 💪",
	"I appreciate that! Let me understand better so I can assist you properly.\n\nYou can ask me anything about:\n• 🏥 Animal health & disease treatment\n• 💊 Our product range & recommendations\n• 📞 How to reach our expert vet team\n• 📦 Orders, pricing & delivery\n\nJust describe your situation and I'll guide you! 🙏",
}

func (r *responder) buildFallback(lower string, st *ConversationState) *models.ChatResponse {
	isQuestion := strings.Contains(lower, "?")
	if !isQuestion {
		for _, p := range questionPrefixes {
			if strings.HasPrefix(lower, p) {
				isQuestion = true
				break
			}
		}
	}

	if isQuestion && len(st.MentionedAnimals) > 0 {
		animalStr := strings.Join(st.MentionedAnimals, " and ")
		return &models.ChatResponse{
			Text: fmt.Sprintf("That's a great question about your %s! While I may not have the exact answer, our veterinary team with 17+ years of experience can definitely help.\n\nHere's what I suggest:\n• **Ask me simpler questions** — like \"What products do you recommend for %s?\"\n• **Describe symptoms** — and I'll try to recommend treatments\n• **Contact our experts** — for detailed, personalized advice\n\nOr try asking about: products, vaccination schedules, feeding plans, or disease symptoms!", animalStr, st.MentionedAnimals[0]),
			Link:     "/contact",
			LinkText: "Speak to an Expert",
		}
	}

	if isQuestion {
		return &models.ChatResponse{
			Text:     "That's a good question! Let me help you find the right answer. I'm best at helping with:\n\n🐔 **Animal health** — Describe symptoms and I'll recommend treatments\n💊 **Products** — Ask about any of our NAFDAC-approved medicines\n📋 **Farm management** — Feeding, vaccination, housing advice\n🚨 **Emergencies** — Immediate vet support\n📦 **Orders & pricing** — How to buy our products\n\nCould you rephrase your question or tell me which of these areas you need help with?",
			Link:     "/services",
			LinkText: "Browse Our Services",
		}
	}

	return &models.ChatResponse{Text: fallbackPrompts[r.pick(len(fallbackPrompts))]}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func anyIn(values, set []string) bool {
	for _, v := range values {
		if contains(set, v) {
			return true
		}
	}
	return false
}

func cardCopy(c models.DiagnosticCardData) *models.DiagnosticCardData {
	c.Recommendations = append([]models.Recommendation(nil), c.Recommendations...)
	return &c
}

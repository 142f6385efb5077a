package chatbot

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/intents.json data/knowledge.json data/keywords.json
var dataFS embed.FS

// Intent is one row of the classification table. Each pattern is a group of
// words that together signal the intent; priority breaks scoring ties and
// higher wins. Intents are loaded once at startup and never change.
type Intent struct {
	Name     string     `json:"name"`
	Patterns [][]string `json:"patterns"`
	Priority int        `json:"priority"`
}

// ResponseTemplate is one candidate canned reply for an intent.
type ResponseTemplate struct {
	Text     string `json:"text"`
	Link     string `json:"link,omitempty"`
	LinkText string `json:"link_text,omitempty"`
	FollowUp string `json:"follow_up,omitempty"`
}

// KnowledgeEntry maps an intent to its candidate replies.
type KnowledgeEntry struct {
	Intent    string             `json:"intent"`
	Responses []ResponseTemplate `json:"responses"`
}

type keywordTables struct {
	Animals         map[string][]string `json:"animals"`
	Symptoms        []string            `json:"symptoms"`
	FollowUpPhrases []string            `json:"follow_up_phrases"`
}

// Tables holds every rule table the engine matches against. The content is
// data, not logic: editing the JSON assets changes the bot's domain knowledge
// without touching the matching code.
type Tables struct {
	Intents   []Intent
	Knowledge map[string][]ResponseTemplate
	keywords  keywordTables
}

// LoadTables parses the embedded rule tables.
func LoadTables() (*Tables, error) {
	t := &Tables{}

	raw, err := dataFS.ReadFile("data/intents.json")
	if err != nil {
		return nil, fmt.Errorf("read intents table: %w", err)
	}
	if err := json.Unmarshal(raw, &t.Intents); err != nil {
		return nil, fmt.Errorf("parse intents table: %w", err)
	}

	raw, err = dataFS.ReadFile("data/knowledge.json")
	if err != nil {
		return nil, fmt.Errorf("read knowledge table: %w", err)
	}
	var entries []KnowledgeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse knowledge table: %w", err)
	}
	t.Knowledge = make(map[string][]ResponseTemplate, len(entries))
	for _, e := range entries {
		if len(e.Responses) == 0 {
			return nil, fmt.Errorf("knowledge entry %q has no responses", e.Intent)
		}
		t.Knowledge[e.Intent] = e.Responses
	}

	raw, err = dataFS.ReadFile("data/keywords.json")
	if err != nil {
		return nil, fmt.Errorf("read keywords table: %w", err)
	}
	if err := json.Unmarshal(raw, &t.keywords); err != nil {
		return nil, fmt.Errorf("parse keywords table: %w", err)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) validate() error {
	seen := make(map[string]bool, len(t.Intents))
	for _, in := range t.Intents {
		if in.Name == "" {
			return fmt.Errorf("intent with empty name")
		}
		if seen[in.Name] {
			return fmt.Errorf("duplicate intent %q", in.Name)
		}
		seen[in.Name] = true
		if len(in.Patterns) == 0 {
			return fmt.Errorf("intent %q has no patterns", in.Name)
		}
	}
	for intent := range t.Knowledge {
		if !seen[intent] {
			return fmt.Errorf("knowledge entry %q has no matching intent", intent)
		}
	}
	if len(t.keywords.Animals) == 0 || len(t.keywords.Symptoms) == 0 {
		return fmt.Errorf("keyword tables are empty")
	}
	return nil
}

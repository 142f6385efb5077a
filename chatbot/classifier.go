package chatbot

import (
	"math"
	"strings"
)

// IntentUnknown is returned when no intent scores above zero.
const IntentUnknown = "unknown"

// MatchMode controls keyword boundary handling.
//
// MatchSubstring is the permissive default: pattern words match anywhere
// inside the text, so "cow" matches inside "coward". It favors recall over
// precision. MatchToken restricts matching to whitespace-separated tokens
// (with stem-style prefix matching kept, so "coughing" still matches "cough").
type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchToken     MatchMode = "token"
)

// Classification is the classifier verdict for one utterance. Confidence is
// informational: nothing downstream gates on it.
type Classification struct {
	Intent     string
	Confidence float64
}

// Classifier scores utterances against the intent table. It is stateless and
// safe for concurrent use.
type Classifier struct {
	tables *Tables
	mode   MatchMode
}

func NewClassifier(tables *Tables, mode MatchMode) *Classifier {
	if mode == "" {
		mode = MatchSubstring
	}
	return &Classifier{tables: tables, mode: mode}
}

// Classify scores every intent and returns the best match. lastIntent is the
// previous turn's classified intent (empty for a fresh conversation); when
// nothing matches but the utterance looks like a continuation ("yes",
// "tell me more", ...), the previous intent is returned at confidence 0.5.
//
// Classify is total: any input, including empty or garbage text, yields
// IntentUnknown at confidence 0 rather than an error.
func (c *Classifier) Classify(message, lastIntent string) Classification {
	lower := strings.ToLower(strings.TrimSpace(message))
	words := strings.Fields(lower)

	var (
		bestIntent   string
		bestScore    float64
		bestPriority int
	)

	for _, intent := range c.tables.Intents {
		var score float64

		for _, pattern := range intent.Patterns {
			// Exact phrase match is worth the most.
			if c.containsPhrase(lower, words, pattern) {
				score += float64(len(pattern)) * 3
				continue
			}

			matched := 0
			for _, pw := range pattern {
				if c.wordMatches(lower, words, pw) {
					matched++
				}
			}
			switch {
			case len(pattern) == 1 && matched == 1:
				score += 2
			case len(pattern) > 1 && matched == len(pattern):
				score += float64(len(pattern)) * 2.5
			case matched > 0:
				score += float64(matched) * 0.5
			}
		}

		// Priority nudge prefers the more specific intent on close calls.
		final := score + float64(intent.Priority)*0.1

		if score > 0 && (final > bestScore || (final == bestScore && intent.Priority > bestPriority)) {
			bestScore = final
			bestIntent = intent.Name
			bestPriority = intent.Priority
		}
	}

	if bestScore == 0 && lastIntent != "" && lastIntent != IntentUnknown {
		for _, p := range c.tables.keywords.FollowUpPhrases {
			if strings.Contains(lower, p) {
				return Classification{Intent: lastIntent, Confidence: 0.5}
			}
		}
	}

	if bestScore == 0 {
		return Classification{Intent: IntentUnknown}
	}
	return Classification{Intent: bestIntent, Confidence: math.Min(bestScore/10, 1)}
}

func (c *Classifier) containsPhrase(lower string, words []string, pattern []string) bool {
	if c.mode == MatchSubstring {
		return strings.Contains(lower, strings.Join(pattern, " "))
	}
	// Token mode: the phrase words must appear as consecutive tokens. A
	// pattern entry may itself hold a multi-word phrase, so re-split the
	// joined pattern rather than trusting its element boundaries.
	phrase := strings.Fields(strings.Join(pattern, " "))
	if len(phrase) == 0 || len(words) < len(phrase) {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		ok := true
		for j, pw := range phrase {
			if words[i+j] != pw {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// wordMatches reports whether a single pattern word is present. Stemming is
// one-way: an utterance word may extend a pattern word ("coughing" matches
// "cough") but a short utterance word never claims a longer pattern word,
// so "how" does not match "howdy".
func (c *Classifier) wordMatches(lower string, words []string, pw string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, pw) {
			return true
		}
	}
	if c.mode == MatchSubstring {
		return strings.Contains(lower, pw)
	}
	return false
}

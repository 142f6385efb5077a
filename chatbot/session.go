package chatbot

import (
	"sync"
	"time"
)

// ConversationState is the per-session memory carried across turns.
// MentionedAnimals and MentionedSymptoms are sets: repeated detections
// across turns never produce duplicates. TopicsDiscussed keeps the distinct
// classified intents in first-seen order.
type ConversationState struct {
	LastIntent        string   `json:"last_intent,omitempty"`
	MentionedAnimals  []string `json:"mentioned_animals,omitempty"`
	MentionedSymptoms []string `json:"mentioned_symptoms,omitempty"`
	MessageCount      int      `json:"message_count"`
	TopicsDiscussed   []string `json:"topics_discussed,omitempty"`
}

// Update records one user turn: bumps the message counter, merges the
// entities extracted from the turn, and tracks the classified intent unless
// it was unknown.
func (s *ConversationState) Update(animals, symptoms []string, intent string) {
	s.MessageCount++
	s.MentionedAnimals = mergeSet(s.MentionedAnimals, animals)
	s.MentionedSymptoms = mergeSet(s.MentionedSymptoms, symptoms)
	if intent != IntentUnknown && intent != "" {
		s.LastIntent = intent
		if !contains(s.TopicsDiscussed, intent) {
			s.TopicsDiscussed = append(s.TopicsDiscussed, intent)
		}
	}
}

// Reset clears all fields so no context leaks into a new conversation.
func (s *ConversationState) Reset() {
	*s = ConversationState{}
}

func mergeSet(dst, add []string) []string {
	for _, v := range add {
		if !contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type sessionEntry struct {
	state        ConversationState
	lastActivity time.Time
}

// SessionStore keeps one ConversationState per session ID. Sessions are
// created on first use and pruned after ttl of inactivity. All access goes
// through the store's lock, so independent conversations on the same process
// never bleed into each other.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// With runs fn with exclusive access to the session's state, creating the
// session if needed. Expired sessions are pruned opportunistically.
func (st *SessionStore) With(sessionID string, fn func(*ConversationState)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked()

	entry, ok := st.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{}
		st.sessions[sessionID] = entry
	}
	entry.lastActivity = st.now()
	fn(&entry.state)
}

// Snapshot returns a copy of the session's state, or false if the session
// does not exist (or has expired).
func (st *SessionStore) Snapshot(sessionID string) (ConversationState, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked()

	entry, ok := st.sessions[sessionID]
	if !ok {
		return ConversationState{}, false
	}
	state := entry.state
	state.MentionedAnimals = append([]string(nil), entry.state.MentionedAnimals...)
	state.MentionedSymptoms = append([]string(nil), entry.state.MentionedSymptoms...)
	state.TopicsDiscussed = append([]string(nil), entry.state.TopicsDiscussed...)
	return state, true
}

// Reset replaces the session with a fresh empty state.
func (st *SessionStore) Reset(sessionID string) {
	st.With(sessionID, func(s *ConversationState) {
		s.Reset()
	})
}

// Delete removes the session entirely.
func (st *SessionStore) Delete(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked()
	return len(st.sessions)
}

func (st *SessionStore) pruneLocked() {
	cutoff := st.now().Add(-st.ttl)
	for id, entry := range st.sessions {
		if entry.lastActivity.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}

package chatbot

import (
	"math/rand"
	"sync"
	"time"

	"agvet-chatbot-backend/models"
)

// maxMessageLen bounds the text fed into the substring scans so oversized
// inputs cannot stall a turn. Anything beyond it is ignored.
const maxMessageLen = 2000

// Engine ties the rule tables, classifier, session store and responder
// together behind the two operations the widget needs: Greet and Respond.
// It never returns an error for user input and is safe for concurrent use
// across sessions.
type Engine struct {
	tables     *Tables
	classifier *Classifier
	sessions   *SessionStore
	responder  *responder

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

type Option func(*options)

type options struct {
	matchMode  MatchMode
	sessionTTL time.Duration
	seed       int64
	seeded     bool
	now        func() time.Time
}

// WithMatchMode selects the keyword boundary policy.
func WithMatchMode(m MatchMode) Option {
	return func(o *options) { o.matchMode = m }
}

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(o *options) { o.sessionTTL = ttl }
}

// WithSeed pins the random source so response selection is deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed; o.seeded = true }
}

// WithClock injects the clock used for time-of-day greetings.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(opts ...Option) (*Engine, error) {
	o := &options{
		matchMode:  MatchSubstring,
		sessionTTL: 30 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	tables, err := LoadTables()
	if err != nil {
		return nil, err
	}

	seed := o.seed
	if !o.seeded {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		tables:     tables,
		classifier: NewClassifier(tables, o.matchMode),
		sessions:   NewSessionStore(o.sessionTTL),
		rng:        rand.New(rand.NewSource(seed)),
		now:        o.now,
	}
	e.responder = &responder{tables: tables, pick: e.pick}
	return e, nil
}

// Greet starts (or restarts) a conversation: the session's state is cleared
// so nothing from a previous chat leaks in, and a page-aware greeting is
// returned.
func (e *Engine) Greet(sessionID, page string) string {
	e.sessions.Reset(sessionID)
	return greetingText(page, e.now())
}

// Respond classifies one user turn, folds it into the session's state and
// builds the reply. It always produces a non-empty response.
func (e *Engine) Respond(sessionID, message, page string) *models.ChatResponse {
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen]
	}

	animals := e.tables.ExtractAnimals(message)
	symptoms := e.tables.ExtractSymptoms(message)

	var resp *models.ChatResponse
	e.sessions.With(sessionID, func(st *ConversationState) {
		cls := e.classifier.Classify(message, st.LastIntent)
		st.Update(animals, symptoms, cls.Intent)
		resp = e.responder.build(message, cls.Intent, page, st, animals, symptoms)
		resp.Intent = models.MessageIntent(cls.Intent)
		resp.Confidence = cls.Confidence
	})
	return resp
}

// Reset clears the session's state without producing a greeting.
func (e *Engine) Reset(sessionID string) {
	e.sessions.Reset(sessionID)
}

// State returns a copy of the session's conversation state.
func (e *Engine) State(sessionID string) (ConversationState, bool) {
	return e.sessions.Snapshot(sessionID)
}

// ActiveSessions reports how many sessions are live.
func (e *Engine) ActiveSessions() int {
	return e.sessions.Len()
}

// Intents exposes the loaded intent table, for introspection endpoints.
func (e *Engine) Intents() []Intent {
	return e.tables.Intents
}

func (e *Engine) pick(n int) int {
	if n <= 1 {
		return 0
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

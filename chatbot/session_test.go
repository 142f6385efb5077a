package chatbot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversationStateUpdate(t *testing.T) {
	var st ConversationState

	st.Update([]string{"poultry"}, []string{"cough"}, "poultry")
	st.Update([]string{"poultry", "goat"}, []string{"cough", "diarrhea"}, "disease_diarrhea")
	st.Update(nil, nil, IntentUnknown)

	assert.Equal(t, 3, st.MessageCount)
	assert.Equal(t, []string{"poultry", "goat"}, st.MentionedAnimals)
	assert.Equal(t, []string{"cough", "diarrhea"}, st.MentionedSymptoms)
	// Unknown never overwrites the last real intent.
	assert.Equal(t, "disease_diarrhea", st.LastIntent)
	assert.Equal(t, []string{"poultry", "disease_diarrhea"}, st.TopicsDiscussed)
}

func TestConversationStateReset(t *testing.T) {
	var st ConversationState
	for i := 0; i < 20; i++ {
		st.Update([]string{"cattle"}, []string{"weak"}, "cattle")
	}

	st.Reset()

	assert.Zero(t, st.MessageCount)
	assert.Empty(t, st.LastIntent)
	assert.Empty(t, st.MentionedAnimals)
	assert.Empty(t, st.MentionedSymptoms)
	assert.Empty(t, st.TopicsDiscussed)
}

func TestSessionStoreIsolation(t *testing.T) {
	store := NewSessionStore(time.Hour)

	store.With("farmer-a", func(s *ConversationState) {
		s.Update([]string{"poultry"}, nil, "poultry")
	})
	store.With("farmer-b", func(s *ConversationState) {
		s.Update([]string{"goat"}, nil, "goat_sheep")
	})

	a, ok := store.Snapshot("farmer-a")
	assert.True(t, ok)
	assert.Equal(t, []string{"poultry"}, a.MentionedAnimals)

	b, ok := store.Snapshot("farmer-b")
	assert.True(t, ok)
	assert.Equal(t, []string{"goat"}, b.MentionedAnimals)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStoreSnapshotIsACopy(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.With("s", func(s *ConversationState) {
		s.Update([]string{"poultry"}, nil, "poultry")
	})

	snap, _ := store.Snapshot("s")
	snap.MentionedAnimals[0] = "mutated"

	again, _ := store.Snapshot("s")
	assert.Equal(t, []string{"poultry"}, again.MentionedAnimals)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.With("old", func(s *ConversationState) { s.MessageCount = 5 })

	current = current.Add(31 * time.Minute)
	_, ok := store.Snapshot("old")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	store := NewSessionStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", n%4)
			for j := 0; j < 50; j++ {
				store.With(id, func(s *ConversationState) {
					s.Update([]string{"poultry"}, nil, "poultry")
				})
				store.Snapshot(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, store.Len())
	snap, ok := store.Snapshot("session-0")
	assert.True(t, ok)
	assert.Equal(t, 100, snap.MessageCount)
	assert.Equal(t, []string{"poultry"}, snap.MentionedAnimals)
}

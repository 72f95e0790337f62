// Package session manages per-caller conversation state: the Session value
// type, a keyed Store contract, and an in-memory store with time-based
// eviction.
package session

import (
	"slices"
	"time"

	"github.com/medassist/fieldchat/core/protocol"
)

// Session is a single caller's ongoing conversation. The first message is
// always the system instruction; it is created once with the session and never
// removed, only textually recomposed when retrieved context is injected.
type Session struct {
	ID          string
	BasePrompt  string // system prompt as configured at creation, before any context injection
	Messages    []protocol.Message
	LastUpdated time.Time
}

// New creates a Session whose sole message is the given system prompt.
func New(id, systemPrompt string) *Session {
	return &Session{
		ID:          id,
		BasePrompt:  systemPrompt,
		Messages:    protocol.InitMessages(protocol.RoleSystem, systemPrompt),
		LastUpdated: time.Now(),
	}
}

// Append adds a message to the conversation history.
func (s *Session) Append(msg protocol.Message) {
	s.Messages = append(s.Messages, msg)
}

// Clone returns an independent deep copy of the session. The store hands
// clones to callers so an in-flight turn never aliases stored state.
func (s *Session) Clone() *Session {
	return &Session{
		ID:          s.ID,
		BasePrompt:  s.BasePrompt,
		Messages:    slices.Clone(s.Messages),
		LastUpdated: s.LastUpdated,
	}
}

// Store is keyed persistence of conversation state. Implementations must be
// safe for concurrent use; the eviction sweep must never remove a session
// out from under an in-flight Save.
type Store interface {
	// GetOrCreate returns an independent copy of the stored session, or a
	// fresh session holding only the system prompt when the id is unknown.
	// Fresh sessions are not stored until Save.
	GetOrCreate(id string) *Session
	// Save overwrites the stored session, refreshing its timestamp, and
	// sweeps expired sessions as a side effect.
	Save(id string, s *Session)
	// EvictExpired removes every session whose age exceeds the retention
	// window.
	EvictExpired()
	// NewID mints a globally-unique opaque session identifier.
	NewID() string
}

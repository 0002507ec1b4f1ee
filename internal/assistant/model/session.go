package model

import "context"

// DialogState is the multi-turn position of a conversation. Exactly one state
// is active per session.
type DialogState string

const (
	StateIdle                 DialogState = "idle"
	StateAwaitingDate         DialogState = "awaiting_date"
	StateAwaitingTime         DialogState = "awaiting_time"
	StateAwaitingCancelTarget DialogState = "awaiting_cancel_confirmation"
)

// Session holds the dialog state and accumulated entity context for one
// conversation. Sessions are never shared across conversations; concurrent
// users each get their own session keyed by ID.
//
// Invariant: when State is StateAwaitingTime the Context always carries a
// date value, placed there by the transition that entered the state.
type Session struct {
	ID      string      `json:"id"`
	UserID  string      `json:"user_id"`
	State   DialogState `json:"state"`
	Context EntityBag   `json:"context"`
}

// NewSession returns an idle session with an empty context.
func NewSession(id, userID string) *Session {
	return &Session{
		ID:      id,
		UserID:  userID,
		State:   StateIdle,
		Context: EntityBag{},
	}
}

// Reset returns the session to idle and clears the accumulated context.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Context = EntityBag{}
}

type SessionRepository interface {
	// Load retrieves the session for the given ID, or (nil, nil) when no
	// session exists yet.
	Load(ctx context.Context, sessionID string) (*Session, error)

	// Save persists the session, refreshing any backend TTL.
	Save(ctx context.Context, session *Session) error

	// Clear removes all stored state for the session.
	Clear(ctx context.Context, sessionID string) error
}

package sessions

import (
	"context"

	"github.com/bookingbot/server/internal/assistant/model"
	logx "github.com/bookingbot/server/pkg/logger"
)

// Manager mediates session lifecycle over a SessionRepository.
type Manager struct {
	repo model.SessionRepository
}

func NewManager(repo model.SessionRepository) *Manager {
	return &Manager{repo: repo}
}

// Begin loads the session for the turn, creating a fresh idle session on
// first contact.
func (m *Manager) Begin(ctx context.Context, sessionID, userID string) (*model.Session, error) {
	s, err := m.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		logx.Debug().Str("session_id", sessionID).Msg("starting new session")
		s = model.NewSession(sessionID, userID)
	}
	if s.Context == nil {
		s.Context = model.EntityBag{}
	}
	return s, nil
}

// Commit persists the session after a turn, refreshing any backend TTL.
func (m *Manager) Commit(ctx context.Context, session *model.Session) error {
	return m.repo.Save(ctx, session)
}

// End discards all stored state for the session.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	return m.repo.Clear(ctx, sessionID)
}

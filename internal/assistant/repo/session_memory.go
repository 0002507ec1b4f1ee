package repo

import (
	"context"
	"sync"

	"github.com/bookingbot/server/internal/assistant/model"
)

// MemorySessionRepository keeps sessions in process memory. It is the
// default backend for local runs and tests.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: map[string]*model.Session{}}
}

func (r *MemorySessionRepository) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Context = s.Context.Clone()
	return &cp, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	cp.Context = session.Context.Clone()
	r.sessions[session.ID] = &cp
	return nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)

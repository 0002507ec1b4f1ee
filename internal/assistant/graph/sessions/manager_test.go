package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingbot/server/internal/assistant/model"
	"github.com/bookingbot/server/internal/assistant/repo"
)

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(repo.NewMemorySessionRepository())

	// First contact mints a fresh idle session.
	s, err := mgr.Begin(ctx, "s1", "user")
	require.NoError(t, err)
	assert.Equal(t, model.StateIdle, s.State)
	assert.Empty(t, s.Context)

	s.State = model.StateAwaitingTime
	s.Context[model.EntityDate] = "2025-01-16"
	require.NoError(t, mgr.Commit(ctx, s))

	// Next turn sees the committed state.
	loaded, err := mgr.Begin(ctx, "s1", "user")
	require.NoError(t, err)
	assert.Equal(t, model.StateAwaitingTime, loaded.State)
	assert.Equal(t, "2025-01-16", loaded.Context[model.EntityDate])

	// End discards everything; the next Begin starts over.
	require.NoError(t, mgr.End(ctx, "s1"))

	fresh, err := mgr.Begin(ctx, "s1", "user")
	require.NoError(t, err)
	assert.Equal(t, model.StateIdle, fresh.State)
	assert.Empty(t, fresh.Context)
}

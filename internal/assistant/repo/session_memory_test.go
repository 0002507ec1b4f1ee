package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingbot/server/internal/assistant/model"
)

func TestMemoryLoadMissingReturnsNil(t *testing.T) {
	r := NewMemorySessionRepository()

	s, err := r.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestMemorySaveLoadRoundTrip(t *testing.T) {
	r := NewMemorySessionRepository()
	ctx := context.Background()

	s := model.NewSession("s1", "u1")
	s.State = model.StateAwaitingTime
	s.Context[model.EntityDate] = "2025-01-16"
	require.NoError(t, r.Save(ctx, s))

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.StateAwaitingTime, got.State)
	assert.Equal(t, "2025-01-16", got.Context[model.EntityDate])
}

func TestMemoryIsolatesStoredSessions(t *testing.T) {
	r := NewMemorySessionRepository()
	ctx := context.Background()

	s := model.NewSession("s1", "u1")
	require.NoError(t, r.Save(ctx, s))

	// Mutating the caller's copy after save must not change the store.
	s.Context[model.EntityDate] = "2025-01-16"

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, got.Context.Has(model.EntityDate))

	// Mutating a loaded copy must not change the store either.
	got.Context[model.EntityTime] = "10:00"
	again, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, again.Context.Has(model.EntityTime))
}

func TestMemoryClear(t *testing.T) {
	r := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, model.NewSession("s1", "u1")))
	require.NoError(t, r.Clear(ctx, "s1"))

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

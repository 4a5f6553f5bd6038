package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kidgames/internal/game"
	"github.com/robalobadob/kidgames/internal/random"
	"github.com/robalobadob/kidgames/internal/sched"
)

func newSession(t *testing.T, id string) game.Session {
	t.Helper()
	s, err := game.New(id, game.KindBubblePop, game.Assets{}, random.NewSeeded(1), sched.NewManual(), nil)
	require.NoError(t, err)
	return s
}

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t, "a")
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, "a"))
	assert.False(t, s.Start(), "deleted sessions are closed")
	_, err = st.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, "a"), ErrNotFound)
}

func TestSaveReplacesAndClosesOld(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old := newSession(t, "a")
	fresh := newSession(t, "a")
	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, fresh))

	assert.False(t, old.Start())
	assert.True(t, fresh.Start())
	assert.Equal(t, 1, st.Len())
}

func TestSweepClosesIdleSessions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	idle := newSession(t, "idle")
	require.NoError(t, st.Save(ctx, idle))

	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	busy := newSession(t, "busy")
	require.NoError(t, st.Save(ctx, busy))

	assert.Equal(t, []string{"idle"}, st.Sweep(ctx, cutoff))
	assert.Equal(t, 1, st.Len())
	assert.False(t, idle.Start())

	_, err := st.Get(ctx, "busy")
	assert.NoError(t, err)
	assert.Empty(t, st.Sweep(ctx, cutoff))
}

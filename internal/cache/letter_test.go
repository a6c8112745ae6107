package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLetterStore(t *testing.T, ttl time.Duration) (*LetterStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewLetterStore(rdb, ttl), mr
}

func TestLetterStorePutGetDelete(t *testing.T) {
	t.Parallel()
	store, _ := newTestLetterStore(t, time.Hour)
	ctx := context.Background()

	letter := Letter{
		Text:         "Dear hiring team,",
		JobTitle:     "Eng",
		EmployerName: "Acme",
		GeneratedAt:  time.Now(),
	}
	require.NoError(t, store.Put(ctx, "session-a", letter))

	got, err := store.Get(ctx, "session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dear hiring team,", got.Text)
	assert.Equal(t, "Eng", got.JobTitle)
	assert.Equal(t, "Acme", got.EmployerName)

	require.NoError(t, store.Delete(ctx, "session-a"))

	got, err = store.Get(ctx, "session-a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLetterStoreGetMissing(t *testing.T) {
	t.Parallel()
	store, _ := newTestLetterStore(t, time.Hour)

	got, err := store.Get(context.Background(), "never-generated")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLetterStoreExpiry(t *testing.T) {
	t.Parallel()
	store, mr := newTestLetterStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-b", Letter{Text: "short lived"}))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "session-b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLetterStoreSessionsAreIndependent(t *testing.T) {
	t.Parallel()
	store, _ := newTestLetterStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-one", Letter{Text: "one"}))
	require.NoError(t, store.Put(ctx, "session-two", Letter{Text: "two"}))
	require.NoError(t, store.Delete(ctx, "session-one"))

	got, err := store.Get(ctx, "session-two")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "two", got.Text)
}

func TestLetterStoreWithoutRedis(t *testing.T) {
	t.Parallel()
	store := NewLetterStore(nil, time.Hour)
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "s", Letter{}), ErrSessionStoreUnavailable)
	_, err := store.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrSessionStoreUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "s"), ErrSessionStoreUnavailable)
}

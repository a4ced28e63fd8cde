package redisrepo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/jrsteele09/go-cinema-client/sessions/redisrepo"
	"github.com/stretchr/testify/require"
)

// Runs against a live redis when CINEMA_TEST_REDIS_ADDR is set.
func TestRedisRepo(t *testing.T) {
	addr := os.Getenv("CINEMA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CINEMA_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := redisrepo.Connect(ctx, addr, os.Getenv("CINEMA_TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	repo := redisrepo.New(client, "test-"+uuid.NewString(), time.Minute)
	t.Cleanup(func() { _ = repo.Clear(ctx) })

	p, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, p)

	want := sessions.Persisted{
		IsAuthenticated: true,
		User:            &cinemamodel.UserInfo{ID: 3, Username: "carol", Role: cinemamodel.RoleAdmin},
	}
	require.NoError(t, repo.Save(ctx, want))

	ttl, err := client.TTL(ctx, repo.Key()).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	p, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, *p)

	require.NoError(t, client.Set(ctx, repo.Key(), "garbage", time.Minute).Err())
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, ierrors.ErrCorruptSnapshot)

	require.NoError(t, repo.Clear(ctx))
	p, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestKey(t *testing.T) {
	require.Equal(t, "cinema:session:default", redisrepo.New(nil, "default", 0).Key())
}

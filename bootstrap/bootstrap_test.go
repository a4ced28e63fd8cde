package bootstrap_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/bootstrap"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-cinema-client/sessions/repofakes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls atomic.Int32
	resp  cinemamodel.AuthResponse
	err   error
	gate  chan struct{}
}

func (f *fakeRefresher) Refresh(ctx context.Context) (cinemamodel.AuthResponse, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.resp, f.err
}

var bob = cinemamodel.UserInfo{ID: 2, Username: "bob", Email: "bob@example.com", Role: cinemamodel.RoleStaff, Points: 5}

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setup(persisted *sessions.Persisted, r *fakeRefresher, opts ...bootstrap.Option) (*bootstrap.Initializer, *sessions.Store, *fakesessionrepo.FakeSessionRepo) {
	repo := fakesessionrepo.NewFakeSessionRepo()
	if persisted != nil {
		repo.Seed(*persisted)
	}
	store := sessions.NewStore(repo, sessions.WithLogger(zerolog.Nop()))
	opts = append([]bootstrap.Option{bootstrap.WithLogger(zerolog.Nop()), bootstrap.WithNowTime(func() time.Time { return now })}, opts...)
	return bootstrap.New(store, r, opts...), store, repo
}

func TestNoPersistedSession(t *testing.T) {
	r := &fakeRefresher{}
	boot, store, _ := setup(nil, r)

	require.True(t, boot.Initializing())
	require.Equal(t, bootstrap.Pending, boot.Outcome())

	require.Equal(t, bootstrap.Anonymous, boot.Run(context.Background()))
	require.False(t, boot.Initializing())
	require.False(t, store.IsAuthenticated())
	require.Zero(t, r.calls.Load())
}

func TestPersistedAnonymousSession(t *testing.T) {
	r := &fakeRefresher{}
	boot, _, _ := setup(&sessions.Persisted{}, r)
	require.Equal(t, bootstrap.Anonymous, boot.Run(context.Background()))
	require.Zero(t, r.calls.Load())
}

func TestRenewalFailureFailsClosed(t *testing.T) {
	failures := []error{
		&api.Error{Kind: api.KindAPI, Status: http.StatusUnauthorized, Message: "Refresh token expired"},
		&api.Error{Kind: api.KindNetwork, Err: errors.New("connection refused")},
	}
	for _, cause := range failures {
		r := &fakeRefresher{err: cause}
		var expired atomic.Int32
		boot, store, repo := setup(&sessions.Persisted{User: &bob, IsAuthenticated: true}, r,
			bootstrap.WithOnExpired(func() { expired.Add(1) }))

		require.Equal(t, bootstrap.Expired, boot.Run(context.Background()))
		require.False(t, store.IsAuthenticated())
		require.Nil(t, store.State().User)
		require.EqualValues(t, 1, expired.Load())
		require.True(t, api.IsAuthExpired(boot.Err()))

		p, err := repo.Load(context.Background())
		require.NoError(t, err)
		require.False(t, p.IsAuthenticated)
	}
}

func TestRenewalSuccess(t *testing.T) {
	r := &fakeRefresher{resp: cinemamodel.AuthResponse{AccessToken: "renewed-token", TokenType: "Bearer", ExpiresIn: 900, User: bob}}
	boot, store, repo := setup(&sessions.Persisted{User: &bob, IsAuthenticated: true}, r)

	require.Equal(t, bootstrap.Renewed, boot.Run(context.Background()))
	st := store.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, bob, *st.User)
	require.Equal(t, "renewed-token", st.Token.AccessToken)
	require.Equal(t, now.Add(15*time.Minute), st.Token.Expiry)
	require.NoError(t, boot.Err())

	for _, w := range repo.Writes() {
		require.NotContains(t, string(w), "renewed-token")
	}
}

func TestEmptyTokenCountsAsFailure(t *testing.T) {
	r := &fakeRefresher{resp: cinemamodel.AuthResponse{User: bob}}
	boot, store, _ := setup(&sessions.Persisted{User: &bob, IsAuthenticated: true}, r)
	require.Equal(t, bootstrap.Expired, boot.Run(context.Background()))
	require.False(t, store.IsAuthenticated())
}

func TestRunsOnce(t *testing.T) {
	r := &fakeRefresher{
		resp: cinemamodel.AuthResponse{AccessToken: "t", ExpiresIn: 60, User: bob},
		gate: make(chan struct{}),
	}
	boot, _, _ := setup(&sessions.Persisted{User: &bob, IsAuthenticated: true}, r)

	var wg sync.WaitGroup
	outcomes := make(chan bootstrap.Outcome, 5)
	for n := 0; n < 5; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- boot.Run(context.Background())
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, boot.Wait(ctx), context.DeadlineExceeded)
	require.True(t, boot.Initializing())

	close(r.gate)
	wg.Wait()
	close(outcomes)
	for o := range outcomes {
		require.Equal(t, bootstrap.Renewed, o)
	}
	require.EqualValues(t, 1, r.calls.Load())
	<-boot.Done()
	require.NoError(t, boot.Wait(context.Background()))
	require.Equal(t, bootstrap.Renewed, boot.Run(context.Background()))
	require.EqualValues(t, 1, r.calls.Load())
}

func TestMidSessionRenew(t *testing.T) {
	r := &fakeRefresher{resp: cinemamodel.AuthResponse{AccessToken: "second", ExpiresIn: 60, User: bob}}
	boot, store, _ := setup(nil, r)
	require.NoError(t, store.SetAuth(context.Background(), bob, nil))

	require.NoError(t, boot.Renew(context.Background()))
	tok, err := store.Token()
	require.NoError(t, err)
	require.Equal(t, "second", tok.AccessToken)

	r.err = errors.New("refresh cookie missing")
	err = boot.Renew(context.Background())
	require.True(t, api.IsAuthExpired(err))
	require.False(t, store.IsAuthenticated())
}

func TestRenewSkipsAnonymousSession(t *testing.T) {
	r := &fakeRefresher{resp: cinemamodel.AuthResponse{AccessToken: "revived", ExpiresIn: 60, User: bob}}
	var expired atomic.Int32
	boot, store, repo := setup(nil, r, bootstrap.WithOnExpired(func() { expired.Add(1) }))

	err := boot.Renew(context.Background())
	require.True(t, api.IsAuthExpired(err))
	require.ErrorIs(t, err, ierrors.ErrNotAuthenticated)
	require.Zero(t, r.calls.Load())
	require.Zero(t, expired.Load())
	require.False(t, store.IsAuthenticated())
	require.Empty(t, repo.Writes())
}

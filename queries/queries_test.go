package queries_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/utils"
	"github.com/jrsteele09/go-cinema-client/queries"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/jrsteele09/go-cinema-client/services"
	"github.com/jrsteele09/go-cinema-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-cinema-client/sessions/repofakes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type reply struct {
	status int
	data   any
}

// server answers "METHOD /path" routes and counts every hit.
type server struct {
	mu     sync.Mutex
	routes map[string]reply
	hits   map[string]int
	auth   map[string]string
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	s.mu.Lock()
	s.hits[route]++
	s.auth[route] = r.Header.Get("Authorization")
	rep, ok := s.routes[route]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		rep = reply{status: http.StatusNotFound}
	}
	if rep.status == 0 {
		rep.status = http.StatusOK
	}
	w.WriteHeader(rep.status)
	if rep.status >= 300 {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": rep.status, "message": http.StatusText(rep.status)})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": rep.data})
}

func (s *server) on(route string, status int, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = reply{status: status, data: data}
}

func (s *server) count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *server) authHeader(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth[route]
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	q     *queries.Queries
	srv   *server
	store *sessions.Store
	repo  *fakesessionrepo.FakeSessionRepo
	clock *clock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := &server{routes: map[string]reply{}, hits: map[string]int{}, auth: map[string]string{}}
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)

	repo := fakesessionrepo.NewFakeSessionRepo()
	store := sessions.NewStore(repo, sessions.WithLogger(zerolog.Nop()))
	client, err := api.New(hs.URL+"/api", api.WithLogger(zerolog.Nop()), api.WithTokenSource(store))
	require.NoError(t, err)

	clk := &clock{now: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)}
	cache := querycache.New(querycache.WithNowTime(clk.Now), querycache.WithLogger(zerolog.Nop()))
	q := queries.New(services.New(client), cache, store, queries.WithLogger(zerolog.Nop()), queries.WithNowTime(clk.Now))
	return &fixture{q: q, srv: srv, store: store, repo: repo, clock: clk}
}

var alice = cinemamodel.UserInfo{ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice", Role: cinemamodel.RoleCustomer, Points: 50}

func authResponse() cinemamodel.AuthResponse {
	return cinemamodel.AuthResponse{AccessToken: "access-1", TokenType: "Bearer", ExpiresIn: 900, User: alice}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	f.srv.on("POST /auth/login", http.StatusOK, authResponse())
	_, err := f.q.Login(context.Background(), cinemamodel.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
}

func TestReadsRespectStaleness(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.srv.on("GET /movies/7", http.StatusOK, cinemamodel.MovieResponse{ID: 7, Title: "Dune"})

	for i := 0; i < 3; i++ {
		m, err := f.q.Movie(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, "Dune", m.Title)
	}
	require.Equal(t, 1, f.srv.count("GET /movies/7"))

	f.clock.Advance(queries.MovieDetailPolicy.StaleTime)
	_, err := f.q.Movie(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 2, f.srv.count("GET /movies/7"))
}

func TestDifferentParametersAreDifferentEntries(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.srv.on("GET /movies", http.StatusOK, services.MoviePage{Page: 0})

	_, err := f.q.Movies(ctx, cinemamodel.PageParams{Page: utils.Ptr(0), Size: utils.Ptr(10)})
	require.NoError(t, err)
	_, err = f.q.Movies(ctx, cinemamodel.PageParams{Page: utils.Ptr(1), Size: utils.Ptr(10)})
	require.NoError(t, err)
	_, err = f.q.Movies(ctx, cinemamodel.PageParams{Size: utils.Ptr(10), Page: utils.Ptr(0)})
	require.NoError(t, err)
	require.Equal(t, 2, f.srv.count("GET /movies"))
}

func TestLoginSetsSessionAndCurrentUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)

	st := f.store.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, alice, *st.User)
	require.Equal(t, "access-1", st.Token.AccessToken)
	require.Equal(t, f.clock.Now().Add(15*time.Minute), st.Token.Expiry)

	me, err := f.q.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, alice, me)
	require.Zero(t, f.srv.count("GET /auth/me"))

	for _, w := range f.repo.Writes() {
		require.NotContains(t, string(w), "access-1")
	}
}

func TestFailedLoginChangesNothing(t *testing.T) {
	f := setup(t)
	f.srv.on("POST /auth/login", http.StatusUnauthorized, nil)
	_, err := f.q.Login(context.Background(), cinemamodel.LoginRequest{Username: "alice", Password: "wrong"})
	require.True(t, api.IsUnauthorized(err))
	require.False(t, f.store.IsAuthenticated())
	require.Zero(t, f.q.Cache().Len())
}

func TestAuthenticatedReadsCarryBearer(t *testing.T) {
	f := setup(t)
	f.login(t)
	f.srv.on("GET /bookings/my-bookings", http.StatusOK, services.BookingPage{})
	_, err := f.q.MyBookings(context.Background(), cinemamodel.PageParams{})
	require.NoError(t, err)
	require.Equal(t, "Bearer access-1", f.srv.authHeader("GET /bookings/my-bookings"))
}

func TestLogoutClearsSessionAndCache(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized} {
		f := setup(t)
		ctx := context.Background()
		f.login(t)
		f.srv.on("GET /movies/7", http.StatusOK, cinemamodel.MovieResponse{ID: 7})
		f.srv.on("POST /auth/logout", status, nil)

		_, err := f.q.Movie(ctx, 7)
		require.NoError(t, err)
		require.NoError(t, f.q.Logout(ctx))

		require.False(t, f.store.IsAuthenticated())
		require.Zero(t, f.q.Cache().Len())
		_, err = f.q.Movie(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, 2, f.srv.count("GET /movies/7"))
	}
}

func TestLogoutServerFailureStillEndsLocalSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)
	f.srv.on("POST /auth/logout", http.StatusInternalServerError, nil)

	err := f.q.Logout(ctx)
	require.True(t, api.IsStatus(err, http.StatusInternalServerError))
	require.False(t, f.store.IsAuthenticated())
	require.Zero(t, f.q.Cache().Len())
}

func TestUpdateProfileUpdatesCacheAndIdentity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)

	updated := cinemamodel.UserResponse{ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice Tran",
		PhoneNumber: utils.Ptr("0901"), Points: 50, Role: cinemamodel.RoleCustomer, Status: cinemamodel.UserActive}
	f.srv.on("PUT /users/profile", http.StatusOK, updated)
	_, err := f.q.UpdateProfile(ctx, cinemamodel.UpdateProfileRequest{FullName: utils.Ptr("Alice Tran")})
	require.NoError(t, err)

	p, err := f.q.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, updated, p)
	require.Zero(t, f.srv.count("GET /users/profile"))

	st := f.store.State()
	require.Equal(t, "Alice Tran", st.User.FullName)
	require.Equal(t, "0901", *st.User.PhoneNumber)
	require.Equal(t, "access-1", st.Token.AccessToken)

	// current-user was invalidated, not rewritten
	f.srv.on("GET /auth/me", http.StatusOK, *st.User)
	_, err = f.q.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.srv.count("GET /auth/me"))
}

func TestCreateBookingSeedsDetailAndInvalidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)

	f.srv.on("GET /bookings/my-bookings", http.StatusOK, services.BookingPage{})
	f.srv.on("GET /shows/3/seats", http.StatusOK, []cinemamodel.ShowSeatResponse{{ID: 1, ShowID: 3, Status: cinemamodel.ShowSeatAvailable}})
	_, err := f.q.MyBookings(ctx, cinemamodel.PageParams{})
	require.NoError(t, err)
	_, err = f.q.ShowSeats(ctx, 3)
	require.NoError(t, err)

	booking := cinemamodel.BookingResponse{ID: 10, BookingCode: "BK-001", ShowID: 3, Status: cinemamodel.BookingPending}
	f.srv.on("POST /bookings", http.StatusOK, booking)
	_, err = f.q.CreateBooking(ctx, cinemamodel.CreateBookingRequest{ShowID: 3, SeatIDs: []int64{1}})
	require.NoError(t, err)

	got, err := f.q.Booking(ctx, "BK-001")
	require.NoError(t, err)
	require.Equal(t, booking.BookingCode, got.BookingCode)
	require.Zero(t, f.srv.count("GET /bookings/BK-001"))

	_, err = f.q.MyBookings(ctx, cinemamodel.PageParams{})
	require.NoError(t, err)
	require.Equal(t, 2, f.srv.count("GET /bookings/my-bookings"))
	_, err = f.q.ShowSeats(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 2, f.srv.count("GET /shows/3/seats"))
}

func TestFailedMutationLeavesCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.srv.on("GET /movies/7", http.StatusOK, cinemamodel.MovieResponse{ID: 7, Title: "Dune"})
	f.srv.on("PUT /admin/movies/7", http.StatusBadRequest, nil)

	_, err := f.q.Movie(ctx, 7)
	require.NoError(t, err)
	_, err = f.q.UpdateMovie(ctx, 7, cinemamodel.UpdateMovieRequest{Title: utils.Ptr("Dune 2")})
	require.Error(t, err)
	_, ok := api.AsError(err)
	require.True(t, ok)

	_, err = f.q.Movie(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 1, f.srv.count("GET /movies/7"))
}

func TestMovieUpdateInvalidatesDetailAndCollections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.srv.on("GET /movies/7", http.StatusOK, cinemamodel.MovieResponse{ID: 7})
	f.srv.on("GET /movies/8", http.StatusOK, cinemamodel.MovieResponse{ID: 8})
	f.srv.on("GET /movies/now-showing", http.StatusOK, []cinemamodel.MovieResponse{})
	f.srv.on("PUT /admin/movies/7", http.StatusOK, cinemamodel.MovieResponse{ID: 7})

	for _, read := range []func() error{
		func() error { _, err := f.q.Movie(ctx, 7); return err },
		func() error { _, err := f.q.Movie(ctx, 8); return err },
		func() error { _, err := f.q.NowShowing(ctx); return err },
	} {
		require.NoError(t, read())
	}
	_, err := f.q.UpdateMovie(ctx, 7, cinemamodel.UpdateMovieRequest{})
	require.NoError(t, err)

	_, _ = f.q.Movie(ctx, 7)
	_, _ = f.q.Movie(ctx, 8)
	_, _ = f.q.NowShowing(ctx)
	require.Equal(t, 2, f.srv.count("GET /movies/7"))
	require.Equal(t, 1, f.srv.count("GET /movies/8"))
	require.Equal(t, 2, f.srv.count("GET /movies/now-showing"))
}

func TestEmptyBookingCodeSkipsNetwork(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.q.Booking(ctx, "")
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
	_, err = f.q.PaymentStatus(ctx, "")
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
	require.ErrorIs(t, f.q.WatchPaymentStatus(ctx, "", nil), ierrors.ErrInvalidRequest)
	require.ErrorIs(t, f.q.CancelBooking(ctx, ""), ierrors.ErrInvalidRequest)
}

func TestWatchPaymentStatusStopsOnCancel(t *testing.T) {
	f := setup(t)
	f.srv.on("GET /payments/status/BK-9", http.StatusOK, cinemamodel.PaymentStatusResponse{BookingCode: "BK-9", PaymentStatus: cinemamodel.PaymentCompleted})

	ctx, cancel := context.WithCancel(context.Background())
	var got cinemamodel.PaymentStatusResponse
	err := f.q.WatchPaymentStatus(ctx, "BK-9", func(s cinemamodel.PaymentStatusResponse, err error) {
		require.NoError(t, err)
		got = s
		if s.PaymentStatus.Settled() {
			cancel()
		}
	})
	require.NoError(t, err)
	require.Equal(t, cinemamodel.PaymentCompleted, got.PaymentStatus)
	require.Equal(t, 1, f.srv.count("GET /payments/status/BK-9"))
}

func TestRegistry(t *testing.T) {
	f := setup(t)
	names := map[string]bool{}
	for _, d := range f.q.Registry() {
		require.False(t, d.DeclaredEffect().Empty(), "mutation %s has no cache effect", d.MutationName())
		require.False(t, names[d.MutationName()], "duplicate mutation %s", d.MutationName())
		names[d.MutationName()] = true
	}

	d, err := f.q.Lookup("bookings.create")
	require.NoError(t, err)
	require.Equal(t, "bookings.create", d.MutationName())

	_, err = f.q.Lookup("bookings.refund")
	require.ErrorIs(t, err, ierrors.ErrUnknownMutation)
}

// Package bootstrap restores the session at process start and renews it silently.
// It fails closed: a session that cannot be renewed is logged out.
package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/jrsteele09/go-cinema-client/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Outcome int

const (
	Pending Outcome = iota
	Anonymous
	Renewed
	Expired
)

func (o Outcome) String() string {
	switch o {
	case Anonymous:
		return "anonymous"
	case Renewed:
		return "renewed"
	case Expired:
		return "expired"
	}
	return "pending"
}

// Refresher exchanges the out-of-band refresh credential for a new access token.
// *services.AuthService satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) (cinemamodel.AuthResponse, error)
}

type Initializer struct {
	store     *sessions.Store
	refresher Refresher
	onExpired []func()
	now       func() time.Time
	log       zerolog.Logger

	once    sync.Once
	done    chan struct{}
	mu      sync.RWMutex
	outcome Outcome
	err     error
}

var _ api.Renewer = (*Initializer)(nil)

type Option func(*Initializer)

func WithLogger(l zerolog.Logger) Option {
	return func(i *Initializer) {
		i.log = l
	}
}

func WithNowTime(now func() time.Time) Option {
	return func(i *Initializer) {
		i.now = now
	}
}

// WithOnExpired registers fn to run whenever a renewal failure forces a logout,
// typically to clear the query cache.
func WithOnExpired(fn func()) Option {
	return func(i *Initializer) {
		i.onExpired = append(i.onExpired, fn)
	}
}

func New(store *sessions.Store, refresher Refresher, opts ...Option) *Initializer {
	i := &Initializer{
		store:     store,
		refresher: refresher,
		now:       time.Now,
		log:       log.Logger,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run restores the persisted session. Only the first call does any work; every
// call returns once bootstrap is complete. Renewal failures are reflected in the
// outcome and the session state, never returned.
func (i *Initializer) Run(ctx context.Context) Outcome {
	i.once.Do(func() {
		defer close(i.done)
		outcome, err := i.run(ctx)
		i.mu.Lock()
		i.outcome, i.err = outcome, err
		i.mu.Unlock()
		ev := i.log.Info()
		if err != nil {
			ev = i.log.Warn().Err(err)
		}
		ev.Stringer("outcome", outcome).Msg("session bootstrap complete")
	})
	return i.Outcome()
}

func (i *Initializer) run(ctx context.Context) (Outcome, error) {
	if err := i.store.Load(ctx); err != nil {
		i.log.Error().Err(err).Msg("loading persisted session, starting anonymous")
		return Anonymous, nil
	}
	if !i.store.IsAuthenticated() {
		return Anonymous, nil
	}
	if err := i.Renew(ctx); err != nil {
		return Expired, err
	}
	return Renewed, nil
}

// Renew refreshes the access token. On any failure the session is logged out and
// the returned error is of kind api.KindAuthExpired.
//
// An anonymous session is never renewed: the call fails with
// ierrors.ErrNotAuthenticated and neither logs out nor runs the expiry hooks.
func (i *Initializer) Renew(ctx context.Context) error {
	if !i.store.IsAuthenticated() {
		return api.AuthExpired(errors.Wrap(ierrors.ErrNotAuthenticated, "[Initializer.Renew]"))
	}
	resp, err := i.refresher.Refresh(ctx)
	if err != nil {
		return i.expire(ctx, err)
	}
	tk, err := token.FromAuthResponse(resp, i.now())
	if err != nil {
		return i.expire(ctx, err)
	}
	if err := i.store.SetAuth(ctx, resp.User, tk); err != nil {
		i.log.Warn().Err(err).Msg("persisting renewed session")
	}
	i.log.Debug().Str("user", resp.User.Username).Time("expiry", tk.Expiry).Msg("access token renewed")
	return nil
}

func (i *Initializer) expire(ctx context.Context, cause error) error {
	if err := i.store.Logout(ctx); err != nil {
		i.log.Warn().Err(err).Msg("persisting logout after failed renewal")
	}
	for _, fn := range i.onExpired {
		fn()
	}
	return api.AuthExpired(errors.Wrap(cause, "[Initializer.Renew]"))
}

// Initializing is true until the first Run completes.
func (i *Initializer) Initializing() bool {
	select {
	case <-i.done:
		return false
	default:
		return true
	}
}

// Done is closed when bootstrap completes.
func (i *Initializer) Done() <-chan struct{} {
	return i.done
}

// Wait blocks until bootstrap completes or ctx ends.
func (i *Initializer) Wait(ctx context.Context) error {
	select {
	case <-i.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Outcome reports how bootstrap ended. It is Pending until Run completes.
func (i *Initializer) Outcome() Outcome {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.outcome
}

// Err is the renewal error behind an Expired outcome, for logging only.
func (i *Initializer) Err() error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.err
}

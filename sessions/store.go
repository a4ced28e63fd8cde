// Package sessions holds the client session: the identity and an access token in
// memory, and a token-free snapshot in durable storage.
package sessions

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Store is a two-state machine (Anonymous, Authenticated) safe for concurrent use.
// Every transition writes a Persisted snapshot to the repo; the in-memory change
// happens first, so a persistence error never leaves the process half logged in.
type Store struct {
	mu            sync.RWMutex
	user          *cinemamodel.UserInfo
	token         *oauth2.Token
	authenticated bool
	repo          Repo
	watchers      []func(State)
	credentials   []CredentialStore
	log           zerolog.Logger
}

// CredentialStore holds the out-of-band refresh credential, e.g. the cookie jar.
type CredentialStore interface {
	Clear() error
}

var _ oauth2.TokenSource = (*Store)(nil)

type StoreOption func(*Store)

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// WithWatcher registers fn to run after every transition, outside the store lock.
func WithWatcher(fn func(State)) StoreOption {
	return func(s *Store) {
		s.watchers = append(s.watchers, fn)
	}
}

// WithCredentials registers c to be cleared on every Logout, so a refresh
// credential never outlives the local session.
func WithCredentials(c CredentialStore) StoreOption {
	return func(s *Store) {
		s.credentials = append(s.credentials, c)
	}
}

func NewStore(repo Repo, opts ...StoreOption) *Store {
	s := &Store{repo: repo, log: log.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the persisted snapshot. The result is Authenticated without a
// token, or Anonymous. Corrupt or inconsistent snapshots load as Anonymous.
func (s *Store) Load(ctx context.Context) error {
	p, err := s.repo.Load(ctx)
	if errors.Is(err, ierrors.ErrCorruptSnapshot) {
		s.log.Warn().Err(err).Msg("discarding corrupt session snapshot")
		p, err = nil, nil
	}
	if err != nil {
		return errors.Wrap(err, "[Store.Load] repo.Load")
	}

	s.mu.Lock()
	s.token = nil
	if p == nil || !p.IsAuthenticated || p.User == nil {
		if p != nil && !p.Valid() {
			s.log.Warn().Msg("persisted session claims authentication without a user, loading anonymous")
		}
		s.user, s.authenticated = nil, false
	} else {
		u := p.User.Clone()
		s.user, s.authenticated = &u, true
	}
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
	return nil
}

// SetAuth moves to Authenticated, replacing the user and token.
func (s *Store) SetAuth(ctx context.Context, user cinemamodel.UserInfo, tok *oauth2.Token) error {
	u := user.Clone()
	s.mu.Lock()
	s.user = &u
	s.token = copyToken(tok)
	s.authenticated = true
	err := s.persistLocked(ctx)
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
	return errors.Wrap(err, "[Store.SetAuth]")
}

// Logout moves to Anonymous, clearing user and token.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = nil
	s.authenticated = false
	err := s.persistLocked(ctx)
	st := s.stateLocked()
	s.mu.Unlock()

	for _, c := range s.credentials {
		if cerr := c.Clear(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("clearing refresh credential")
		}
	}
	s.notify(st)
	return errors.Wrap(err, "[Store.Logout]")
}

// UpdateIdentity merges patch into the current user. It is a no-op when Anonymous.
func (s *Store) UpdateIdentity(ctx context.Context, patch cinemamodel.IdentityPatch) error {
	s.mu.Lock()
	if !s.authenticated || s.user == nil || patch.Empty() {
		s.mu.Unlock()
		return nil
	}
	u := s.user.Apply(patch)
	s.user = &u
	err := s.persistLocked(ctx)
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
	return errors.Wrap(err, "[Store.UpdateIdentity]")
}

// State returns a copy that callers may keep and modify.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Token implements oauth2.TokenSource over the in-memory token.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, ierrors.ErrNotAuthenticated
	}
	return copyToken(s.token), nil
}

// Snapshot is what the current state persists as.
func (s *Store) Snapshot() Persisted {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Persisted {
	p := Persisted{IsAuthenticated: s.authenticated}
	if s.user != nil {
		u := s.user.Clone()
		p.User = &u
	}
	return p
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshotLocked()); err != nil {
		s.log.Error().Err(err).Bool("authenticated", s.authenticated).Msg("persisting session")
		return err
	}
	return nil
}

func (s *Store) stateLocked() State {
	st := State{IsAuthenticated: s.authenticated, Token: copyToken(s.token)}
	if s.user != nil {
		u := s.user.Clone()
		st.User = &u
	}
	return st
}

func (s *Store) notify(st State) {
	for _, fn := range s.watchers {
		fn(st)
	}
}

func copyToken(t *oauth2.Token) *oauth2.Token {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Package queries binds the resource services to the cache: one read per query
// with its key and staleness policy, and one declared mutation per cache-affecting
// write.
package queries

import (
	"context"
	"time"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/jrsteele09/go-cinema-client/services"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Edit is the input of an update addressed by numeric id.
type Edit[T any] struct {
	ID  int64
	Req T
}

// PointsChange adds or deducts loyalty points.
type PointsChange struct {
	UserID int64
	Points int
}

// Queries is the cache-aware facade consumers use instead of calling services
// directly.
type Queries struct {
	svc     *services.Services
	cache   *querycache.Cache
	session *sessions.Store
	m       *mutations
	now     func() time.Time
	log     zerolog.Logger
}

type Option func(*Queries)

func WithLogger(l zerolog.Logger) Option {
	return func(q *Queries) {
		q.log = l
	}
}

func WithNowTime(now func() time.Time) Option {
	return func(q *Queries) {
		q.now = now
	}
}

func New(svc *services.Services, cache *querycache.Cache, session *sessions.Store, opts ...Option) *Queries {
	q := &Queries{
		svc:     svc,
		cache:   cache,
		session: session,
		now:     time.Now,
		log:     log.Logger,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.m = newMutations(q)
	return q
}

func (q *Queries) Cache() *querycache.Cache {
	return q.cache
}

// Registry lists every declared cache-affecting mutation.
func (q *Queries) Registry() []querycache.Declared {
	return q.m.declared()
}

// Lookup finds a declared mutation by name.
func (q *Queries) Lookup(name string) (querycache.Declared, error) {
	for _, d := range q.m.declared() {
		if d.MutationName() == name {
			return d, nil
		}
	}
	return nil, errors.Wrapf(ierrors.ErrUnknownMutation, "[Queries.Lookup] %q", name)
}

func requireCode(code string) error {
	if code == "" {
		return errors.Wrap(ierrors.ErrInvalidRequest, "booking code is empty")
	}
	return nil
}

func query[T any](ctx context.Context, q *Queries, key querycache.Key, policy querycache.Policy, fetch querycache.Fetcher[T]) (T, error) {
	return querycache.Query(ctx, q.cache, key, policy, fetch)
}

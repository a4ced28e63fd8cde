package querycache

import (
	"context"
	"time"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/pkg/errors"
)

// Fetcher loads the value for one key from the network.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Query returns the cached value for key when it is fresh under policy, and
// otherwise fetches it. Concurrent callers for the same key share one fetch.
// The fetch runs detached from any single caller's cancellation; a caller whose
// context ends stops waiting and gets ctx.Err(). Fetch errors are returned as is
// and leave the cache untouched.
func Query[T any](ctx context.Context, c *Cache, key Key, policy Policy, fetch Fetcher[T]) (T, error) {
	if v, ok := c.lookup(key, policy); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
		c.log.Warn().Stringer("key", key).Msg("cached value has an unexpected type, re-fetching")
	}
	return load(ctx, c, key, fetch)
}

// Refetch bypasses staleness but still joins a fetch already in flight.
func Refetch[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T]) (T, error) {
	return load(ctx, c, key, fetch)
}

// Peek returns the cached value regardless of staleness, without fetching.
func Peek[T any](c *Cache, key Key) (T, bool) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.id()]
	if !ok {
		return zero, false
	}
	t, ok := e.value.(T)
	return t, ok
}

// Watch reads key immediately and then re-fetches every policy.PollInterval,
// handing each result to onResult, until ctx is done. Without a poll interval it
// delivers one result and waits for ctx.
func Watch[T any](ctx context.Context, c *Cache, key Key, policy Policy, fetch Fetcher[T], onResult func(T, error)) {
	v, err := Query(ctx, c, key, policy, fetch)
	if ctx.Err() != nil {
		return
	}
	onResult(v, err)

	if policy.PollInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(policy.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v, err := load(ctx, c, key, fetch)
			if ctx.Err() != nil {
				return
			}
			onResult(v, err)
		}
	}
}

func load[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T]) (T, error) {
	var zero T
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.id(), func() (any, error) {
		f := c.begin(key)
		v, err := fetch(detached)
		c.finish(f, v, err)
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		t, ok := res.Val.(T)
		if !ok {
			return zero, errors.Wrapf(ierrors.ErrInvalidKey, "[querycache.Query] %s shared by different result types", key)
		}
		return t, nil
	}
}

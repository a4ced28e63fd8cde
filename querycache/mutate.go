package querycache

import "context"

// Update writes Value directly under Key.
type Update struct {
	Key   Key
	Value any
}

// Effect is what a successful mutation does to the cache.
type Effect struct {
	Updates     []Update
	Invalidates []Key
	ClearAll    bool
}

func (e Effect) Empty() bool {
	return len(e.Updates) == 0 && len(e.Invalidates) == 0 && !e.ClearAll
}

// Mutation pairs a server write with its declared cache effect. Effect receives
// the mutation input and its result and must tolerate zero values.
type Mutation[In, Out any] struct {
	Name   string
	Run    func(ctx context.Context, in In) (Out, error)
	Effect func(in In, out Out) Effect
}

// Declared is the type-erased view of a Mutation used by registries.
type Declared interface {
	MutationName() string
	DeclaredEffect() Effect
}

func (m Mutation[In, Out]) MutationName() string {
	return m.Name
}

// DeclaredEffect evaluates Effect with zero input and output.
func (m Mutation[In, Out]) DeclaredEffect() Effect {
	var in In
	var out Out
	if m.Effect == nil {
		return Effect{}
	}
	return m.Effect(in, out)
}

// Mutate runs m and, only if it succeeds, applies its effect before returning.
// On failure the cache is untouched and the error is returned unchanged.
func Mutate[In, Out any](ctx context.Context, c *Cache, m Mutation[In, Out], in In) (Out, error) {
	out, err := m.Run(ctx, in)
	if err != nil {
		c.log.Debug().Err(err).Str("mutation", m.Name).Msg("mutation failed, cache untouched")
		return out, err
	}
	if m.Effect != nil {
		c.Apply(m.Effect(in, out))
	}
	return out, nil
}

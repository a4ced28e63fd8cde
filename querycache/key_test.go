package querycache_test

import (
	"testing"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/utils"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/stretchr/testify/require"
)

type status string

func TestKeyDeterminism(t *testing.T) {
	a := querycache.MustKey("movies", "list", querycache.Filters{"page": 1, "size": 20, "genre": nil})
	b := querycache.MustKey("movies", "list", querycache.Filters{"size": 20, "page": 1})
	require.True(t, a.Equal(b))
	require.Equal(t, a.String(), b.String())

	c := querycache.MustKey("movies", "list", querycache.Filters{"size": 20, "page": 2})
	require.False(t, a.Equal(c))
}

func TestKeyPartsAreTyped(t *testing.T) {
	require.False(t, querycache.MustKey("movies", 1).Equal(querycache.MustKey("movies", "1")))
	require.False(t, querycache.MustKey("x", true).Equal(querycache.MustKey("x", "true")))
	require.True(t, querycache.MustKey("x", nil).Equal(querycache.MustKey("x", (*int)(nil))))
	require.True(t, querycache.MustKey("x", utils.Ptr(5)).Equal(querycache.MustKey("x", 5)))
	require.True(t, querycache.MustKey("x", status("OPEN")).Equal(querycache.MustKey("x", "OPEN")))
	require.True(t, querycache.MustKey("x", int64(7)).Equal(querycache.MustKey("x", 7)))
	require.True(t, querycache.MustKey("f", map[string]*int{"a": nil, "b": utils.Ptr(1)}).
		Equal(querycache.MustKey("f", querycache.Filters{"b": 1})))
}

func TestKeyPrefix(t *testing.T) {
	all := querycache.MustKey("movies")
	lists := all.With("list")
	detail := all.With("detail", 1)

	require.True(t, lists.With(querycache.Filters{"page": 0}).HasPrefix(lists))
	require.True(t, lists.HasPrefix(all))
	require.True(t, detail.HasPrefix(all))
	require.False(t, detail.HasPrefix(lists))
	require.False(t, all.HasPrefix(lists))
	require.False(t, all.With("detail", 10).HasPrefix(detail))
	require.True(t, detail.HasPrefix(querycache.Key{}))
}

func TestKeyExtendDoesNotAlias(t *testing.T) {
	base := querycache.MustKey("shows")
	a := base.With("detail", 1)
	b := base.With("detail", 2)
	require.Equal(t, 1, base.Len())
	require.False(t, a.Equal(b))
}

func TestInvalidKeyParts(t *testing.T) {
	_, err := querycache.NewKey("movies", []int{1, 2})
	require.ErrorIs(t, err, ierrors.ErrInvalidKey)

	_, err = querycache.NewKey(querycache.Filters{"ids": struct{}{}})
	require.ErrorIs(t, err, ierrors.ErrInvalidKey)

	require.Panics(t, func() { querycache.MustKey(struct{}{}) })
}

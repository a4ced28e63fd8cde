package filerepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/secretfile"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/jrsteele09/go-cinema-client/sessions/filerepo"
	"github.com/stretchr/testify/require"
)

func snapshot() sessions.Persisted {
	return sessions.Persisted{
		IsAuthenticated: true,
		User: &cinemamodel.UserInfo{
			ID:       9,
			Username: "bob",
			Email:    "bob@example.com",
			Role:     cinemamodel.RoleStaff,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, passphrase := range []string{"", "correct horse"} {
		path := filepath.Join(t.TempDir(), "session.json")
		repo := filerepo.New(secretfile.New(path, passphrase))

		p, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, p)

		require.NoError(t, repo.Save(ctx, snapshot()))
		p, err = repo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, snapshot(), *p)

		require.NoError(t, repo.Clear(ctx))
		p, err = repo.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, p)
	}
}

func TestCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := filerepo.New(secretfile.New(path, "")).Load(ctx)
	require.ErrorIs(t, err, ierrors.ErrCorruptSnapshot)
}

func TestWrongPassphraseIsCorrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, filerepo.New(secretfile.New(path, "one")).Save(ctx, snapshot()))

	_, err := filerepo.New(secretfile.New(path, "two")).Load(ctx)
	require.ErrorIs(t, err, ierrors.ErrCorruptSnapshot)
}

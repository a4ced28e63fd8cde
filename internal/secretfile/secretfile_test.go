package secretfile_test

import (
	"os"
	"path/filepath"
	"testing"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/secretfile"
	"github.com/stretchr/testify/require"
)

func TestPlaintextRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	f := secretfile.New(path, "")

	require.NoError(t, f.Write([]byte(`{"isAuthenticated":false}`)))
	got, err := f.Read()
	require.NoError(t, err)
	require.Equal(t, `{"isAuthenticated":false}`, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEncryptedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	f := secretfile.New(path, "correct horse")

	require.NoError(t, f.Write([]byte("secret identity")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret identity")

	got, err := f.Read()
	require.NoError(t, err)
	require.Equal(t, "secret identity", string(got))
}

func TestWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	require.NoError(t, secretfile.New(path, "one").Write([]byte("data")))

	_, err := secretfile.New(path, "two").Read()
	require.ErrorIs(t, err, ierrors.ErrWrongPassphrase)

	_, err = secretfile.New(path, "").Read()
	require.ErrorIs(t, err, ierrors.ErrWrongPassphrase)
}

func TestMissingAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.json")
	f := secretfile.New(path, "")

	_, err := f.Read()
	require.ErrorIs(t, err, ierrors.ErrNotFound)
	require.NoError(t, f.Remove())

	require.NoError(t, f.Write([]byte("x")))
	require.NoError(t, f.Remove())
	_, err = f.Read()
	require.ErrorIs(t, err, ierrors.ErrNotFound)
}

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/app"
	"github.com/jrsteele09/go-cinema-client/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(" 4, 5,,6 ")
	require.NoError(t, err)
	require.Equal(t, []int64{4, 5, 6}, ids)

	_, err = parseIDs("4,x")
	require.Error(t, err)
}

func TestDescribeValidation(t *testing.T) {
	err := &api.Error{Kind: api.KindValidation, Status: 400, Message: "Validation failed",
		Fields: map[string]string{"username": "required", "email": "invalid"}}
	require.Equal(t, "Validation failed\n  email: invalid\n  username: required", describe(errors.Wrap(err, "login")).Error())

	plain := errors.New("boom")
	require.Equal(t, plain, describe(plain))
}

func TestGuardedCommandNeedsLogin(t *testing.T) {
	hs := httptest.NewServer(http.NotFoundHandler())
	defer hs.Close()
	dir := t.TempDir()
	cfg, err := config.FromMap(map[string]string{
		"CINEMA_API_BASE_URL": hs.URL + "/api",
		"CINEMA_SESSION_FILE": filepath.Join(dir, "session.json"),
		"CINEMA_COOKIE_FILE":  filepath.Join(dir, "cookies.json"),
	})
	require.NoError(t, err)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	defer a.Close()
	a.Start(ctx)

	var out strings.Builder
	err = commands["bookings"].run(ctx, a, &out, nil)
	require.ErrorContains(t, err, "not signed in")
	err = commands["admin-cancel"].run(ctx, a, &out, []string{"-code", "BK1"})
	require.ErrorContains(t, err, "not signed in")
}

func TestUsageListsCommands(t *testing.T) {
	var sb strings.Builder
	usage(&sb)
	for name := range commands {
		require.Contains(t, sb.String(), name)
	}
}

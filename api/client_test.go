package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, srv *httptest.Server, opts ...api.Option) *api.Client {
	t.Helper()
	opts = append([]api.Option{api.WithLogger(zerolog.Nop())}, opts...)
	c, err := api.New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return c
}

func TestSendUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/7", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get(api.RequestIDHeader))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": movie{ID: 7, Title: "Dune"}})
	}))
	defer srv.Close()

	c := newClient(t, srv, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok-1"})))
	m, err := api.Get[movie](context.Background(), c, "/movies/7")
	require.NoError(t, err)
	require.Equal(t, movie{ID: 7, Title: "Dune"}, m)
}

func TestSendWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []string{"Hanoi"}})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	cities, err := api.Get[[]string](context.Background(), c, "/cinemas/cities")
	require.NoError(t, err)
	require.Equal(t, []string{"Hanoi"}, cities)
}

func TestSendQueryAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "ACTIVE", r.URL.Query().Get("status"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.False(t, r.URL.Query().Has("size"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "x", in["name"])
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": nil})
	}))
	defer srv.Close()

	page := 2
	c := newClient(t, srv)
	err := c.Send(context.Background(), http.MethodPut, "/x", map[string]string{"name": "x"}, nil,
		api.Query("status", "ACTIVE"), api.QueryInt("page", &page), api.QueryInt("size", nil))
	require.NoError(t, err)
}

func TestSendMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		f, err := files[0].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		require.Equal(t, "png-bytes", string(data))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"url": "/a"}, {"url": "/b"}}})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	var out []map[string]any
	err := c.Send(context.Background(), http.MethodPost, "/files/upload/images", nil, &out, api.Multipart(
		api.FilePart{Field: "files", FileName: "a.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
		api.FilePart{Field: "files", FileName: "b.png", Content: strings.NewReader("more")},
	))
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestErrorKinds(t *testing.T) {
	t.Run("API error carries status, code and message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 1001, "message": "Invalid username or password", "path": "/api/auth/login"})
		}))
		defer srv.Close()

		err := newClient(t, srv).Send(context.Background(), http.MethodPost, "/auth/login", map[string]string{}, nil)
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, api.KindAPI, apiErr.Kind)
		require.Equal(t, http.StatusUnauthorized, apiErr.Status)
		require.Equal(t, 1001, apiErr.Code)
		require.Equal(t, "Invalid username or password", apiErr.Message)
		require.True(t, api.IsUnauthorized(err))
	})

	t.Run("Validation error keeps field map", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code": 9001, "message": "Validation failed",
				"details": map[string]string{"email": "must be a well-formed email address"},
			})
		}))
		defer srv.Close()

		err := newClient(t, srv).Send(context.Background(), http.MethodPost, "/auth/register", map[string]string{}, nil)
		require.True(t, api.IsValidation(err))
		apiErr, _ := api.AsError(err)
		require.Equal(t, "must be a well-formed email address", apiErr.Fields["email"])
	})

	t.Run("Non-JSON error body falls back to status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "<html>bad gateway</html>", http.StatusBadGateway)
		}))
		defer srv.Close()

		err := newClient(t, srv).Send(context.Background(), http.MethodGet, "/movies", nil, nil)
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, api.KindAPI, apiErr.Kind)
		require.Equal(t, "Bad Gateway", apiErr.Message)
	})

	t.Run("Network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		c := newClient(t, srv)
		srv.Close()

		err := c.Send(context.Background(), http.MethodGet, "/movies", nil, nil)
		require.True(t, api.IsNetwork(err))
		apiErr, _ := api.AsError(err)
		require.Zero(t, apiErr.Status)
	})

	t.Run("Cancelled context is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newClient(t, srv).Send(ctx, http.MethodGet, "/movies", nil, nil)
		require.True(t, api.IsNetwork(err))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("success=false in a 2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "nope"})
		}))
		defer srv.Close()

		var out movie
		err := newClient(t, srv).Send(context.Background(), http.MethodGet, "/movies/1", nil, &out)
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, "nope", apiErr.Message)
	})

	t.Run("success=false in a 2xx without a result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Booking already cancelled"})
		}))
		defer srv.Close()

		err := newClient(t, srv).Send(context.Background(), http.MethodPut, "/bookings/BK1/cancel", nil, nil)
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, api.KindAPI, apiErr.Kind)
		require.Equal(t, "Booking already cancelled", apiErr.Message)
	})

	t.Run("Void call accepts an empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, newClient(t, srv).Send(context.Background(), http.MethodDelete, "/movies/1", nil, nil))
	})

	t.Run("Missing parameter is not a validation error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code": 9001, "message": "Required parameter 'keyword' is missing",
				"details": map[string]string{"parameter": "keyword", "type": "String"},
			})
		}))
		defer srv.Close()

		err := newClient(t, srv).Send(context.Background(), http.MethodGet, "/movies/search", nil, nil)
		require.False(t, api.IsValidation(err))
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, api.KindAPI, apiErr.Kind)
		require.Empty(t, apiErr.Fields)
		require.Equal(t, "Required parameter 'keyword' is missing", apiErr.Message)
	})
}

type swappingSource struct {
	token atomic.Value
}

func (s *swappingSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.token.Load().(string)}, nil
}

func TestRenewAndRetryOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 1002, "message": "Token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": movie{ID: 1}})
	}))
	defer srv.Close()

	src := &swappingSource{}
	src.token.Store("stale")
	var renewals atomic.Int32
	renewer := api.RenewerFunc(func(ctx context.Context) error {
		renewals.Add(1)
		src.token.Store("fresh")
		return nil
	})

	c := newClient(t, srv, api.WithTokenSource(src), api.WithRenewer(renewer))
	m, err := api.Get[movie](context.Background(), c, "/bookings/ABC")
	require.NoError(t, err)
	require.Equal(t, int64(1), m.ID)
	require.Equal(t, int32(1), renewals.Load())
	require.Equal(t, int32(2), calls.Load())
}

func TestNoRenewForSessionCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid refresh token"})
	}))
	defer srv.Close()

	var renewals atomic.Int32
	renewer := api.RenewerFunc(func(ctx context.Context) error {
		renewals.Add(1)
		return nil
	})
	c := newClient(t, srv, api.WithRenewer(renewer))

	err := c.Send(context.Background(), http.MethodPost, "/auth/refresh", nil, nil, api.NoRenew())
	require.True(t, api.IsUnauthorized(err))
	require.Zero(t, renewals.Load())
}

func TestRenewFailureReturnsOriginalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 1002, "message": "Token expired"})
	}))
	defer srv.Close()

	c := newClient(t, srv, api.WithRenewer(api.RenewerFunc(func(ctx context.Context) error {
		return errors.New("refresh cookie missing")
	})))
	err := c.Send(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	require.Equal(t, 1002, apiErr.Code)
}

func TestAuthExpiredWrapsCause(t *testing.T) {
	cause := &api.Error{Kind: api.KindAPI, Status: http.StatusUnauthorized, Code: 1003, Message: "Invalid token"}
	err := api.AuthExpired(cause)

	require.True(t, api.IsAuthExpired(err))
	require.Equal(t, 1003, err.Code)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "session expired")
}

func TestNewRejectsRelativeBase(t *testing.T) {
	_, err := api.New("/api")
	require.Error(t, err)
}

// Package token turns auth responses into the in-memory bearer credential and
// reads the unverified claims the server embeds in its access tokens.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const bearer = "Bearer"

// Claims are the access token claims the client can read without the signing key.
// They are hints for display and expiry planning, never an authorization decision.
type Claims struct {
	Subject      string    // username
	UserID       int64     // userId claim
	Role         string    // role claim
	TokenVersion int64     // tokenVersion claim, bumped server-side on logout
	IssuedAt     time.Time // iat
	ExpiresAt    time.Time // exp, zero when absent
}

// FromAuthResponse builds the bearer token held in memory after login, register or
// refresh. Expiry comes from expiresIn, falling back to the JWT exp claim.
func FromAuthResponse(resp cinemamodel.AuthResponse, now time.Time) (*oauth2.Token, error) {
	if strings.TrimSpace(resp.AccessToken) == "" {
		return nil, errors.Wrap(ierrors.ErrInvalidRequest, "[token.FromAuthResponse] empty access token")
	}

	tok := &oauth2.Token{
		AccessToken: resp.AccessToken,
		TokenType:   normaliseType(resp.TokenType),
	}
	if resp.ExpiresIn > 0 {
		tok.ExpiresIn = resp.ExpiresIn
		tok.Expiry = now.Add(time.Duration(resp.ExpiresIn) * time.Second)
		return tok, nil
	}
	if claims, err := Inspect(resp.AccessToken); err == nil && !claims.ExpiresAt.IsZero() {
		tok.Expiry = claims.ExpiresAt
	}
	return tok, nil
}

// Inspect parses the token without verifying the signature.
func Inspect(raw string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.Wrap(ierrors.ErrInvalidRequest, "[token.Inspect] empty token")
	}
	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[token.Inspect] ParseUnverified")
	}
	mc, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("[token.Inspect] unexpected claims type")
	}

	c := &Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	// JSON numbers decode as float64
	if id, ok := mc["userId"].(float64); ok {
		c.UserID = int64(id)
	}
	if v, ok := mc["tokenVersion"].(float64); ok {
		c.TokenVersion = int64(v)
	}
	return c, nil
}

// ExpiresWithin reports whether tok expires inside the window. Tokens without a
// known expiry never report true.
func ExpiresWithin(tok *oauth2.Token, window time.Duration, now time.Time) bool {
	if tok == nil || tok.Expiry.IsZero() {
		return false
	}
	return !tok.Expiry.After(now.Add(window))
}

func normaliseType(t string) string {
	if t == "" || strings.EqualFold(t, bearer) {
		return bearer
	}
	return t
}

package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

// AuthService covers the session lifecycle. None of its calls take part in
// renew-and-retry, and login/register/refresh go out without a bearer token.
type AuthService struct {
	client *api.Client
}

func NewAuthService(c *api.Client) *AuthService {
	return &AuthService{client: c}
}

func (s *AuthService) Login(ctx context.Context, req cinemamodel.LoginRequest) (cinemamodel.AuthResponse, error) {
	return api.Post[cinemamodel.AuthResponse](ctx, s.client, RouteAuthLogin, req, api.NoRenew(), api.Anonymous())
}

func (s *AuthService) Register(ctx context.Context, req cinemamodel.RegisterRequest) (cinemamodel.AuthResponse, error) {
	return api.Post[cinemamodel.AuthResponse](ctx, s.client, RouteAuthRegister, req, api.NoRenew(), api.Anonymous())
}

// Refresh exchanges the refresh cookie held by the HTTP client's jar for a new
// access token. No request body is needed.
func (s *AuthService) Refresh(ctx context.Context) (cinemamodel.AuthResponse, error) {
	var out cinemamodel.AuthResponse
	err := s.client.Send(ctx, http.MethodPost, RouteAuthRefresh, nil, &out, api.NoRenew(), api.Anonymous())
	return out, err
}

// Logout revokes every token server-side and clears the refresh cookie.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Send(ctx, http.MethodPost, RouteAuthLogout, nil, nil, api.NoRenew())
}

func (s *AuthService) CurrentUser(ctx context.Context) (cinemamodel.UserInfo, error) {
	return api.Get[cinemamodel.UserInfo](ctx, s.client, RouteAuthMe)
}

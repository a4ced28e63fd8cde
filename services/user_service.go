package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type UserService struct {
	client *api.Client
}

func NewUserService(c *api.Client) *UserService {
	return &UserService{client: c}
}

func (s *UserService) Profile(ctx context.Context) (cinemamodel.UserResponse, error) {
	return api.Get[cinemamodel.UserResponse](ctx, s.client, RouteUserProfile)
}

func (s *UserService) UpdateProfile(ctx context.Context, req cinemamodel.UpdateProfileRequest) (cinemamodel.UserResponse, error) {
	return api.Put[cinemamodel.UserResponse](ctx, s.client, RouteUserProfile, req)
}

func (s *UserService) ChangePassword(ctx context.Context, req cinemamodel.ChangePasswordRequest) error {
	return s.client.Send(ctx, http.MethodPut, RouteUserChangePassword, req, nil)
}

func (s *UserService) ByID(ctx context.Context, id int64) (cinemamodel.UserResponse, error) {
	return api.Get[cinemamodel.UserResponse](ctx, s.client, idPath(RouteUser, id))
}

func (s *UserService) ByUsername(ctx context.Context, username string) (cinemamodel.UserResponse, error) {
	return api.Get[cinemamodel.UserResponse](ctx, s.client, strPath(RouteUserByUsername, username))
}

func (s *UserService) All(ctx context.Context, p cinemamodel.PageParams) (cinemamodel.Page[cinemamodel.UserResponse], error) {
	return api.Get[cinemamodel.Page[cinemamodel.UserResponse]](ctx, s.client, RouteUsers, pageQuery(p)...)
}

func (s *UserService) AdminUpdate(ctx context.Context, id int64, req cinemamodel.AdminUpdateUserRequest) (cinemamodel.UserResponse, error) {
	return api.Put[cinemamodel.UserResponse](ctx, s.client, idPath(RouteUser, id), req)
}

func (s *UserService) AddPoints(ctx context.Context, id int64, points int) error {
	return s.client.Send(ctx, http.MethodPost, idPath(RouteUserAddPoints, id), cinemamodel.PointsRequest{Points: points}, nil)
}

func (s *UserService) DeductPoints(ctx context.Context, id int64, points int) error {
	return s.client.Send(ctx, http.MethodPost, idPath(RouteUserDeductPoints, id), cinemamodel.PointsRequest{Points: points}, nil)
}

func (s *UserService) Lock(ctx context.Context, id int64) error {
	return s.client.Send(ctx, http.MethodPost, idPath(RouteUserLock, id), nil, nil)
}

func (s *UserService) Unlock(ctx context.Context, id int64) error {
	return s.client.Send(ctx, http.MethodPost, idPath(RouteUserUnlock, id), nil, nil)
}

// UpdateStatus and UpdateRole send their value as a query parameter with no body.
func (s *UserService) UpdateStatus(ctx context.Context, id int64, status cinemamodel.UserStatus) (cinemamodel.UserResponse, error) {
	return api.Put[cinemamodel.UserResponse](ctx, s.client, idPath(RouteAdminUserStatus, id), nil, api.Query("status", string(status)))
}

func (s *UserService) UpdateRole(ctx context.Context, id int64, role cinemamodel.Role) (cinemamodel.UserResponse, error) {
	return api.Put[cinemamodel.UserResponse](ctx, s.client, idPath(RouteAdminUserRole, id), nil, api.Query("role", string(role)))
}

package services

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type GenreService struct {
	client *api.Client
}

func NewGenreService(c *api.Client) *GenreService {
	return &GenreService{client: c}
}

func (s *GenreService) All(ctx context.Context) ([]cinemamodel.GenreResponse, error) {
	return api.Get[[]cinemamodel.GenreResponse](ctx, s.client, RouteGenres)
}

func (s *GenreService) ByID(ctx context.Context, id int64) (cinemamodel.GenreResponse, error) {
	return api.Get[cinemamodel.GenreResponse](ctx, s.client, idPath(RouteGenre, id))
}

func (s *GenreService) Create(ctx context.Context, req cinemamodel.CreateGenreRequest) (cinemamodel.GenreResponse, error) {
	return api.Post[cinemamodel.GenreResponse](ctx, s.client, RouteAdminGenres, req)
}

func (s *GenreService) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, s.client, idPath(RouteAdminGenre, id))
}

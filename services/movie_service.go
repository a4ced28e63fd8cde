package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type MoviePage = cinemamodel.Page[cinemamodel.MovieResponse]

type MovieService struct {
	client *api.Client
}

func NewMovieService(c *api.Client) *MovieService {
	return &MovieService{client: c}
}

func (s *MovieService) ByID(ctx context.Context, id int64) (cinemamodel.MovieResponse, error) {
	return api.Get[cinemamodel.MovieResponse](ctx, s.client, idPath(RouteMovie, id))
}

func (s *MovieService) All(ctx context.Context, p cinemamodel.PageParams) (MoviePage, error) {
	return api.Get[MoviePage](ctx, s.client, RouteMovies, pageQuery(p)...)
}

func (s *MovieService) NowShowing(ctx context.Context) ([]cinemamodel.MovieResponse, error) {
	return api.Get[[]cinemamodel.MovieResponse](ctx, s.client, RouteMoviesNowShowing)
}

func (s *MovieService) ComingSoon(ctx context.Context) ([]cinemamodel.MovieResponse, error) {
	return api.Get[[]cinemamodel.MovieResponse](ctx, s.client, RouteMoviesComingSoon)
}

func (s *MovieService) Search(ctx context.Context, keyword string, p cinemamodel.PageParams) (MoviePage, error) {
	opts := append([]api.RequestOption{api.Query("keyword", keyword)}, pageQuery(p)...)
	return api.Get[MoviePage](ctx, s.client, RouteMoviesSearch, opts...)
}

func (s *MovieService) ByGenre(ctx context.Context, genreID int64, p cinemamodel.PageParams) (MoviePage, error) {
	return api.Get[MoviePage](ctx, s.client, idPath(RouteMoviesByGenre, genreID), pageQuery(p)...)
}

func (s *MovieService) ByStatus(ctx context.Context, status cinemamodel.MovieStatus, p cinemamodel.PageParams) (MoviePage, error) {
	return api.Get[MoviePage](ctx, s.client, strPath(RouteMoviesByStatus, string(status)), pageQuery(p)...)
}

func (s *MovieService) Create(ctx context.Context, req cinemamodel.CreateMovieRequest) (cinemamodel.MovieResponse, error) {
	return api.Post[cinemamodel.MovieResponse](ctx, s.client, RouteAdminMovies, req)
}

func (s *MovieService) Update(ctx context.Context, id int64, req cinemamodel.UpdateMovieRequest) (cinemamodel.MovieResponse, error) {
	return api.Put[cinemamodel.MovieResponse](ctx, s.client, idPath(RouteAdminMovie, id), req)
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, s.client, idPath(RouteAdminMovie, id))
}

func (s *MovieService) UpdateStatus(ctx context.Context, id int64, status cinemamodel.MovieStatus) error {
	return s.client.Send(ctx, http.MethodPut, idPath(RouteAdminMovieStatus, id), cinemamodel.MovieStatusRequest{Status: status}, nil)
}

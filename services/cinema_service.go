package services

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type CinemaPage = cinemamodel.Page[cinemamodel.CinemaResponse]

// CinemaService covers cinemas, their halls and the physical seats in a hall.
type CinemaService struct {
	client *api.Client
}

func NewCinemaService(c *api.Client) *CinemaService {
	return &CinemaService{client: c}
}

func (s *CinemaService) ByID(ctx context.Context, id int64) (cinemamodel.CinemaResponse, error) {
	return api.Get[cinemamodel.CinemaResponse](ctx, s.client, idPath(RouteCinema, id))
}

func (s *CinemaService) WithHalls(ctx context.Context, id int64) (cinemamodel.CinemaResponse, error) {
	return api.Get[cinemamodel.CinemaResponse](ctx, s.client, idPath(RouteCinemaWithHalls, id))
}

func (s *CinemaService) All(ctx context.Context, p cinemamodel.PageParams) (CinemaPage, error) {
	return api.Get[CinemaPage](ctx, s.client, RouteCinemas, pageQuery(p)...)
}

func (s *CinemaService) Active(ctx context.Context) ([]cinemamodel.CinemaResponse, error) {
	return api.Get[[]cinemamodel.CinemaResponse](ctx, s.client, RouteCinemasActive)
}

func (s *CinemaService) ByCity(ctx context.Context, city string, p cinemamodel.PageParams) (CinemaPage, error) {
	return api.Get[CinemaPage](ctx, s.client, strPath(RouteCinemasByCity, city), pageQuery(p)...)
}

func (s *CinemaService) Cities(ctx context.Context) ([]string, error) {
	return api.Get[[]string](ctx, s.client, RouteCinemasCities)
}

func (s *CinemaService) Search(ctx context.Context, keyword string, p cinemamodel.PageParams) (CinemaPage, error) {
	opts := append([]api.RequestOption{api.Query("keyword", keyword)}, pageQuery(p)...)
	return api.Get[CinemaPage](ctx, s.client, RouteCinemasSearch, opts...)
}

func (s *CinemaService) Create(ctx context.Context, req cinemamodel.CreateCinemaRequest) (cinemamodel.CinemaResponse, error) {
	return api.Post[cinemamodel.CinemaResponse](ctx, s.client, RouteAdminCinemas, req)
}

func (s *CinemaService) Update(ctx context.Context, id int64, req cinemamodel.UpdateCinemaRequest) (cinemamodel.CinemaResponse, error) {
	return api.Put[cinemamodel.CinemaResponse](ctx, s.client, idPath(RouteAdminCinema, id), req)
}

func (s *CinemaService) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, s.client, idPath(RouteAdminCinema, id))
}

func (s *CinemaService) Hall(ctx context.Context, id int64) (cinemamodel.HallResponse, error) {
	return api.Get[cinemamodel.HallResponse](ctx, s.client, idPath(RouteHall, id))
}

func (s *CinemaService) HallWithSeats(ctx context.Context, id int64) (cinemamodel.HallResponse, error) {
	return api.Get[cinemamodel.HallResponse](ctx, s.client, idPath(RouteHallWithSeats, id))
}

func (s *CinemaService) HallsByCinema(ctx context.Context, cinemaID int64) ([]cinemamodel.HallResponse, error) {
	return api.Get[[]cinemamodel.HallResponse](ctx, s.client, idPath(RouteHallsByCinema, cinemaID))
}

func (s *CinemaService) CreateHall(ctx context.Context, req cinemamodel.CreateHallRequest) (cinemamodel.HallResponse, error) {
	return api.Post[cinemamodel.HallResponse](ctx, s.client, RouteAdminHalls, req)
}

func (s *CinemaService) UpdateHall(ctx context.Context, id int64, req cinemamodel.UpdateHallRequest) (cinemamodel.HallResponse, error) {
	return api.Put[cinemamodel.HallResponse](ctx, s.client, idPath(RouteAdminHall, id), req)
}

func (s *CinemaService) DeleteHall(ctx context.Context, id int64) error {
	return api.Delete(ctx, s.client, idPath(RouteAdminHall, id))
}

func (s *CinemaService) UpdateSeat(ctx context.Context, id int64, req cinemamodel.UpdateSeatRequest) (cinemamodel.SeatResponse, error) {
	return api.Put[cinemamodel.SeatResponse](ctx, s.client, idPath(RouteAdminSeat, id), req)
}

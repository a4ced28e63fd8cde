package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type ShowPage = cinemamodel.Page[cinemamodel.ShowResponse]

type ShowService struct {
	client *api.Client
}

func NewShowService(c *api.Client) *ShowService {
	return &ShowService{client: c}
}

func (s *ShowService) ByID(ctx context.Context, id int64) (cinemamodel.ShowResponse, error) {
	return api.Get[cinemamodel.ShowResponse](ctx, s.client, idPath(RouteShow, id))
}

// Seats returns the per-show seat map with live availability.
func (s *ShowService) Seats(ctx context.Context, showID int64) ([]cinemamodel.ShowSeatResponse, error) {
	return api.Get[[]cinemamodel.ShowSeatResponse](ctx, s.client, idPath(RouteShowSeats, showID))
}

func (s *ShowService) ByMovie(ctx context.Context, movieID int64, r cinemamodel.ShowDateRange) ([]cinemamodel.ShowResponse, error) {
	return api.Get[[]cinemamodel.ShowResponse](ctx, s.client, idPath(RouteShowsByMovie, movieID),
		api.QueryString("startDate", r.StartDate), api.QueryString("endDate", r.EndDate))
}

func (s *ShowService) ByCinema(ctx context.Context, cinemaID int64, date *string) ([]cinemamodel.ShowResponse, error) {
	return api.Get[[]cinemamodel.ShowResponse](ctx, s.client, idPath(RouteShowsByCinema, cinemaID), api.QueryString("date", date))
}

func (s *ShowService) All(ctx context.Context, status *cinemamodel.ShowStatus, p cinemamodel.PageParams) (ShowPage, error) {
	opts := pageQuery(p)
	if status != nil {
		opts = append(opts, api.Query("status", string(*status)))
	}
	return api.Get[ShowPage](ctx, s.client, RouteShows, opts...)
}

func (s *ShowService) ByHallAndDate(ctx context.Context, hallID int64, date string) ([]cinemamodel.ShowResponse, error) {
	return api.Get[[]cinemamodel.ShowResponse](ctx, s.client, idPath(RouteAdminShowsByHall, hallID), api.Query("date", date))
}

func (s *ShowService) Create(ctx context.Context, req cinemamodel.CreateShowRequest) (cinemamodel.ShowResponse, error) {
	return api.Post[cinemamodel.ShowResponse](ctx, s.client, RouteAdminShows, req)
}

func (s *ShowService) Update(ctx context.Context, id int64, req cinemamodel.UpdateShowRequest) (cinemamodel.ShowResponse, error) {
	return api.Put[cinemamodel.ShowResponse](ctx, s.client, idPath(RouteAdminShow, id), req)
}

func (s *ShowService) Delete(ctx context.Context, id int64) error {
	return api.Delete(ctx, s.client, idPath(RouteAdminShow, id))
}

func (s *ShowService) Cancel(ctx context.Context, id int64) error {
	return s.client.Send(ctx, http.MethodPut, idPath(RouteAdminShowCancel, id), nil, nil)
}

package services

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type BookingPage = cinemamodel.Page[cinemamodel.BookingResponse]

// BookingService drives the booking lifecycle. Seat locking and expiry are the
// server's business; the client only reports what it is told.
type BookingService struct {
	client *api.Client
}

func NewBookingService(c *api.Client) *BookingService {
	return &BookingService{client: c}
}

func (s *BookingService) Create(ctx context.Context, req cinemamodel.CreateBookingRequest) (cinemamodel.BookingResponse, error) {
	return api.Post[cinemamodel.BookingResponse](ctx, s.client, RouteBookings, req)
}

func (s *BookingService) ByCode(ctx context.Context, code string) (cinemamodel.BookingResponse, error) {
	return api.Get[cinemamodel.BookingResponse](ctx, s.client, strPath(RouteBooking, code))
}

func (s *BookingService) Checkout(ctx context.Context, req cinemamodel.CheckoutRequest) (cinemamodel.BookingResponse, error) {
	return api.Post[cinemamodel.BookingResponse](ctx, s.client, RouteBookingCheckout, req)
}

func (s *BookingService) ConfirmPayment(ctx context.Context, req cinemamodel.ConfirmPaymentRequest) (cinemamodel.BookingResponse, error) {
	return api.Post[cinemamodel.BookingResponse](ctx, s.client, RouteBookingConfirm, req)
}

func (s *BookingService) Cancel(ctx context.Context, code string) error {
	return s.client.Send(ctx, http.MethodPut, strPath(RouteBookingCancel, code), nil, nil)
}

func (s *BookingService) Mine(ctx context.Context, p cinemamodel.PageParams) (BookingPage, error) {
	return api.Get[BookingPage](ctx, s.client, RouteMyBookings, pageQuery(p)...)
}

func (s *BookingService) All(ctx context.Context, status *cinemamodel.BookingStatus, p cinemamodel.PageParams) (BookingPage, error) {
	opts := pageQuery(p)
	if status != nil {
		opts = append(opts, api.Query("status", string(*status)))
	}
	return api.Get[BookingPage](ctx, s.client, RouteAdminBookings, opts...)
}

func (s *BookingService) AdminCancel(ctx context.Context, code string) error {
	return s.client.Send(ctx, http.MethodPut, strPath(RouteAdminBookingCancel, code), nil, nil)
}

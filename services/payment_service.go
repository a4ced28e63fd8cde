package services

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

type PaymentService struct {
	client *api.Client
}

func NewPaymentService(c *api.Client) *PaymentService {
	return &PaymentService{client: c}
}

// Create starts a gateway payment and returns the URL the user must visit.
func (s *PaymentService) Create(ctx context.Context, req cinemamodel.CreatePaymentRequest) (cinemamodel.PaymentURLResponse, error) {
	return api.Post[cinemamodel.PaymentURLResponse](ctx, s.client, RoutePaymentCreate, req)
}

func (s *PaymentService) Status(ctx context.Context, bookingCode string) (cinemamodel.PaymentStatusResponse, error) {
	return api.Get[cinemamodel.PaymentStatusResponse](ctx, s.client, strPath(RoutePaymentStatus, bookingCode))
}

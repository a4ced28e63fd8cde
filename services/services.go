// Package services maps each logical API operation onto exactly one HTTP call.
// Services hold no state, do no caching and never recover from errors: every
// failure comes back as the adapter's *api.Error.
package services

import (
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
)

// Services groups one service per resource family.
type Services struct {
	Auth    *AuthService
	Users   *UserService
	Movies  *MovieService
	Genres  *GenreService
	Cinemas *CinemaService
	Shows   *ShowService
	Booking *BookingService
	Payment *PaymentService
	Files   *FileService
}

func New(c *api.Client) *Services {
	return &Services{
		Auth:    NewAuthService(c),
		Users:   NewUserService(c),
		Movies:  NewMovieService(c),
		Genres:  NewGenreService(c),
		Cinemas: NewCinemaService(c),
		Shows:   NewShowService(c),
		Booking: NewBookingService(c),
		Payment: NewPaymentService(c),
		Files:   NewFileService(c),
	}
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func strPath(format, segment string) string {
	return fmt.Sprintf(format, url.PathEscape(segment))
}

func pageQuery(p cinemamodel.PageParams) []api.RequestOption {
	return []api.RequestOption{api.QueryInt("page", p.Page), api.QueryInt("size", p.Size)}
}

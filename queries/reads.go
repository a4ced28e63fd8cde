package queries

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/jrsteele09/go-cinema-client/services"
)

// Auth and users

func (q *Queries) CurrentUser(ctx context.Context) (cinemamodel.UserInfo, error) {
	return query(ctx, q, AuthKeys.CurrentUser(), IdentityPolicy, q.svc.Auth.CurrentUser)
}

func (q *Queries) Profile(ctx context.Context) (cinemamodel.UserResponse, error) {
	return query(ctx, q, UserKeys.Profile(), IdentityPolicy, q.svc.Users.Profile)
}

func (q *Queries) User(ctx context.Context, id int64) (cinemamodel.UserResponse, error) {
	return query(ctx, q, UserKeys.Detail(id), IdentityPolicy, func(ctx context.Context) (cinemamodel.UserResponse, error) {
		return q.svc.Users.ByID(ctx, id)
	})
}

func (q *Queries) UserByUsername(ctx context.Context, username string) (cinemamodel.UserResponse, error) {
	return query(ctx, q, UserKeys.ByUsername(username), IdentityPolicy, func(ctx context.Context) (cinemamodel.UserResponse, error) {
		return q.svc.Users.ByUsername(ctx, username)
	})
}

func (q *Queries) Users(ctx context.Context, p cinemamodel.PageParams) (cinemamodel.Page[cinemamodel.UserResponse], error) {
	return query(ctx, q, UserKeys.List(p), UserListPolicy, func(ctx context.Context) (cinemamodel.Page[cinemamodel.UserResponse], error) {
		return q.svc.Users.All(ctx, p)
	})
}

// Movies and genres

func (q *Queries) Movie(ctx context.Context, id int64) (cinemamodel.MovieResponse, error) {
	return query(ctx, q, MovieKeys.Detail(id), MovieDetailPolicy, func(ctx context.Context) (cinemamodel.MovieResponse, error) {
		return q.svc.Movies.ByID(ctx, id)
	})
}

func (q *Queries) Movies(ctx context.Context, p cinemamodel.PageParams) (services.MoviePage, error) {
	return query(ctx, q, MovieKeys.List(p), MovieListPolicy, func(ctx context.Context) (services.MoviePage, error) {
		return q.svc.Movies.All(ctx, p)
	})
}

func (q *Queries) NowShowing(ctx context.Context) ([]cinemamodel.MovieResponse, error) {
	return query(ctx, q, MovieKeys.NowShowing(), MovieFeedPolicy, q.svc.Movies.NowShowing)
}

func (q *Queries) ComingSoon(ctx context.Context) ([]cinemamodel.MovieResponse, error) {
	return query(ctx, q, MovieKeys.ComingSoon(), MovieFeedPolicy, q.svc.Movies.ComingSoon)
}

func (q *Queries) SearchMovies(ctx context.Context, keyword string, p cinemamodel.PageParams) (services.MoviePage, error) {
	return query(ctx, q, MovieKeys.Search(keyword, p), MovieListPolicy, func(ctx context.Context) (services.MoviePage, error) {
		return q.svc.Movies.Search(ctx, keyword, p)
	})
}

func (q *Queries) MoviesByGenre(ctx context.Context, genreID int64, p cinemamodel.PageParams) (services.MoviePage, error) {
	return query(ctx, q, MovieKeys.ByGenre(genreID, p), MovieListPolicy, func(ctx context.Context) (services.MoviePage, error) {
		return q.svc.Movies.ByGenre(ctx, genreID, p)
	})
}

func (q *Queries) MoviesByStatus(ctx context.Context, status cinemamodel.MovieStatus, p cinemamodel.PageParams) (services.MoviePage, error) {
	return query(ctx, q, MovieKeys.ByStatus(status, p), MovieListPolicy, func(ctx context.Context) (services.MoviePage, error) {
		return q.svc.Movies.ByStatus(ctx, status, p)
	})
}

func (q *Queries) Genres(ctx context.Context) ([]cinemamodel.GenreResponse, error) {
	return query(ctx, q, GenreKeys.List(), GenrePolicy, q.svc.Genres.All)
}

func (q *Queries) Genre(ctx context.Context, id int64) (cinemamodel.GenreResponse, error) {
	return query(ctx, q, GenreKeys.Detail(id), GenrePolicy, func(ctx context.Context) (cinemamodel.GenreResponse, error) {
		return q.svc.Genres.ByID(ctx, id)
	})
}

// Cinemas and halls

func (q *Queries) Cinema(ctx context.Context, id int64) (cinemamodel.CinemaResponse, error) {
	return query(ctx, q, CinemaKeys.Detail(id), CinemaPolicy, func(ctx context.Context) (cinemamodel.CinemaResponse, error) {
		return q.svc.Cinemas.ByID(ctx, id)
	})
}

func (q *Queries) CinemaWithHalls(ctx context.Context, id int64) (cinemamodel.CinemaResponse, error) {
	return query(ctx, q, CinemaKeys.WithHalls(id), CinemaPolicy, func(ctx context.Context) (cinemamodel.CinemaResponse, error) {
		return q.svc.Cinemas.WithHalls(ctx, id)
	})
}

func (q *Queries) Cinemas(ctx context.Context, p cinemamodel.PageParams) (services.CinemaPage, error) {
	return query(ctx, q, CinemaKeys.List(p), CinemaPolicy, func(ctx context.Context) (services.CinemaPage, error) {
		return q.svc.Cinemas.All(ctx, p)
	})
}

func (q *Queries) ActiveCinemas(ctx context.Context) ([]cinemamodel.CinemaResponse, error) {
	return query(ctx, q, CinemaKeys.Active(), CinemaPolicy, q.svc.Cinemas.Active)
}

func (q *Queries) CinemasByCity(ctx context.Context, city string, p cinemamodel.PageParams) (services.CinemaPage, error) {
	return query(ctx, q, CinemaKeys.ByCity(city, p), CinemaPolicy, func(ctx context.Context) (services.CinemaPage, error) {
		return q.svc.Cinemas.ByCity(ctx, city, p)
	})
}

func (q *Queries) Cities(ctx context.Context) ([]string, error) {
	return query(ctx, q, CinemaKeys.Cities(), CityPolicy, q.svc.Cinemas.Cities)
}

func (q *Queries) SearchCinemas(ctx context.Context, keyword string, p cinemamodel.PageParams) (services.CinemaPage, error) {
	return query(ctx, q, CinemaKeys.Search(keyword, p), CinemaSearchPolicy, func(ctx context.Context) (services.CinemaPage, error) {
		return q.svc.Cinemas.Search(ctx, keyword, p)
	})
}

func (q *Queries) Hall(ctx context.Context, id int64) (cinemamodel.HallResponse, error) {
	return query(ctx, q, HallKeys.Detail(id), HallPolicy, func(ctx context.Context) (cinemamodel.HallResponse, error) {
		return q.svc.Cinemas.Hall(ctx, id)
	})
}

func (q *Queries) HallWithSeats(ctx context.Context, id int64) (cinemamodel.HallResponse, error) {
	return query(ctx, q, HallKeys.WithSeats(id), HallPolicy, func(ctx context.Context) (cinemamodel.HallResponse, error) {
		return q.svc.Cinemas.HallWithSeats(ctx, id)
	})
}

func (q *Queries) HallsByCinema(ctx context.Context, cinemaID int64) ([]cinemamodel.HallResponse, error) {
	return query(ctx, q, HallKeys.ByCinema(cinemaID), HallPolicy, func(ctx context.Context) ([]cinemamodel.HallResponse, error) {
		return q.svc.Cinemas.HallsByCinema(ctx, cinemaID)
	})
}

// Shows

func (q *Queries) Show(ctx context.Context, id int64) (cinemamodel.ShowResponse, error) {
	return query(ctx, q, ShowKeys.Detail(id), ShowPolicy, func(ctx context.Context) (cinemamodel.ShowResponse, error) {
		return q.svc.Shows.ByID(ctx, id)
	})
}

func (q *Queries) ShowSeats(ctx context.Context, showID int64) ([]cinemamodel.ShowSeatResponse, error) {
	return query(ctx, q, ShowKeys.Seats(showID), ShowSeatsPolicy, q.showSeatsFetcher(showID))
}

// WatchShowSeats polls the seat map until ctx is done.
func (q *Queries) WatchShowSeats(ctx context.Context, showID int64, onResult func([]cinemamodel.ShowSeatResponse, error)) {
	querycache.Watch(ctx, q.cache, ShowKeys.Seats(showID), ShowSeatsPolicy, q.showSeatsFetcher(showID), onResult)
}

func (q *Queries) showSeatsFetcher(showID int64) querycache.Fetcher[[]cinemamodel.ShowSeatResponse] {
	return func(ctx context.Context) ([]cinemamodel.ShowSeatResponse, error) {
		return q.svc.Shows.Seats(ctx, showID)
	}
}

func (q *Queries) ShowsByMovie(ctx context.Context, movieID int64, r cinemamodel.ShowDateRange) ([]cinemamodel.ShowResponse, error) {
	return query(ctx, q, ShowKeys.ByMovie(movieID, r), ShowListPolicy, func(ctx context.Context) ([]cinemamodel.ShowResponse, error) {
		return q.svc.Shows.ByMovie(ctx, movieID, r)
	})
}

func (q *Queries) ShowsByCinema(ctx context.Context, cinemaID int64, date *string) ([]cinemamodel.ShowResponse, error) {
	return query(ctx, q, ShowKeys.ByCinema(cinemaID, date), ShowListPolicy, func(ctx context.Context) ([]cinemamodel.ShowResponse, error) {
		return q.svc.Shows.ByCinema(ctx, cinemaID, date)
	})
}

func (q *Queries) Shows(ctx context.Context, status *cinemamodel.ShowStatus, p cinemamodel.PageParams) (services.ShowPage, error) {
	return query(ctx, q, ShowKeys.List(status, p), ShowListPolicy, func(ctx context.Context) (services.ShowPage, error) {
		return q.svc.Shows.All(ctx, status, p)
	})
}

func (q *Queries) ShowsByHall(ctx context.Context, hallID int64, date string) ([]cinemamodel.ShowResponse, error) {
	return query(ctx, q, ShowKeys.ByHall(hallID, date), ShowListPolicy, func(ctx context.Context) ([]cinemamodel.ShowResponse, error) {
		return q.svc.Shows.ByHallAndDate(ctx, hallID, date)
	})
}

// Bookings and payments

// Booking reads one booking. An empty code fails without a network call.
func (q *Queries) Booking(ctx context.Context, code string) (cinemamodel.BookingResponse, error) {
	if err := requireCode(code); err != nil {
		return cinemamodel.BookingResponse{}, err
	}
	return query(ctx, q, BookingKeys.Detail(code), BookingPolicy, q.bookingFetcher(code))
}

func (q *Queries) WatchBooking(ctx context.Context, code string, onResult func(cinemamodel.BookingResponse, error)) error {
	if err := requireCode(code); err != nil {
		return err
	}
	querycache.Watch(ctx, q.cache, BookingKeys.Detail(code), BookingPolicy, q.bookingFetcher(code), onResult)
	return nil
}

func (q *Queries) bookingFetcher(code string) querycache.Fetcher[cinemamodel.BookingResponse] {
	return func(ctx context.Context) (cinemamodel.BookingResponse, error) {
		return q.svc.Booking.ByCode(ctx, code)
	}
}

func (q *Queries) MyBookings(ctx context.Context, p cinemamodel.PageParams) (services.BookingPage, error) {
	return query(ctx, q, BookingKeys.MyBookingsPage(p), BookingListPolicy, func(ctx context.Context) (services.BookingPage, error) {
		return q.svc.Booking.Mine(ctx, p)
	})
}

func (q *Queries) AllBookings(ctx context.Context, status *cinemamodel.BookingStatus, p cinemamodel.PageParams) (services.BookingPage, error) {
	return query(ctx, q, BookingKeys.List(status, p), BookingListPolicy, func(ctx context.Context) (services.BookingPage, error) {
		return q.svc.Booking.All(ctx, status, p)
	})
}

func (q *Queries) PaymentStatus(ctx context.Context, code string) (cinemamodel.PaymentStatusResponse, error) {
	if err := requireCode(code); err != nil {
		return cinemamodel.PaymentStatusResponse{}, err
	}
	return query(ctx, q, PaymentKeys.Status(code), PaymentStatusPolicy, q.paymentStatusFetcher(code))
}

// WatchPaymentStatus polls every few seconds until ctx is done. Callers usually
// cancel once the status is settled.
func (q *Queries) WatchPaymentStatus(ctx context.Context, code string, onResult func(cinemamodel.PaymentStatusResponse, error)) error {
	if err := requireCode(code); err != nil {
		return err
	}
	querycache.Watch(ctx, q.cache, PaymentKeys.Status(code), PaymentStatusPolicy, q.paymentStatusFetcher(code), onResult)
	return nil
}

func (q *Queries) paymentStatusFetcher(code string) querycache.Fetcher[cinemamodel.PaymentStatusResponse] {
	return func(ctx context.Context) (cinemamodel.PaymentStatusResponse, error) {
		return q.svc.Payment.Status(ctx, code)
	}
}

package queries

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/querycache"
)

// Login authenticates, stores the session and seeds the current-user entry.
func (q *Queries) Login(ctx context.Context, req cinemamodel.LoginRequest) (cinemamodel.AuthResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.login, req)
}

func (q *Queries) Register(ctx context.Context, req cinemamodel.RegisterRequest) (cinemamodel.AuthResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.register, req)
}

// Logout ends the session locally whatever the server says, and clears the cache.
func (q *Queries) Logout(ctx context.Context) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.logout, struct{}{})
	return err
}

func (q *Queries) UpdateProfile(ctx context.Context, req cinemamodel.UpdateProfileRequest) (cinemamodel.UserResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateProfile, req)
}

// ChangePassword has no cache effect.
func (q *Queries) ChangePassword(ctx context.Context, req cinemamodel.ChangePasswordRequest) error {
	return q.svc.Users.ChangePassword(ctx, req)
}

func (q *Queries) AdminUpdateUser(ctx context.Context, id int64, req cinemamodel.AdminUpdateUserRequest) (cinemamodel.UserResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.adminUpdateUser, Edit[cinemamodel.AdminUpdateUserRequest]{ID: id, Req: req})
}

func (q *Queries) AddPoints(ctx context.Context, userID int64, points int) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.addPoints, PointsChange{UserID: userID, Points: points})
	return err
}

func (q *Queries) DeductPoints(ctx context.Context, userID int64, points int) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deductPoints, PointsChange{UserID: userID, Points: points})
	return err
}

func (q *Queries) LockUser(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.lockUser, id)
	return err
}

func (q *Queries) UnlockUser(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.unlockUser, id)
	return err
}

func (q *Queries) UpdateUserStatus(ctx context.Context, id int64, status cinemamodel.UserStatus) (cinemamodel.UserResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateStatus, Edit[cinemamodel.UserStatus]{ID: id, Req: status})
}

func (q *Queries) UpdateUserRole(ctx context.Context, id int64, role cinemamodel.Role) (cinemamodel.UserResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateRole, Edit[cinemamodel.Role]{ID: id, Req: role})
}

func (q *Queries) CreateMovie(ctx context.Context, req cinemamodel.CreateMovieRequest) (cinemamodel.MovieResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createMovie, req)
}

func (q *Queries) UpdateMovie(ctx context.Context, id int64, req cinemamodel.UpdateMovieRequest) (cinemamodel.MovieResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateMovie, Edit[cinemamodel.UpdateMovieRequest]{ID: id, Req: req})
}

func (q *Queries) DeleteMovie(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deleteMovie, id)
	return err
}

func (q *Queries) UpdateMovieStatus(ctx context.Context, id int64, status cinemamodel.MovieStatus) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.updateMovieStatus, Edit[cinemamodel.MovieStatus]{ID: id, Req: status})
	return err
}

func (q *Queries) CreateGenre(ctx context.Context, req cinemamodel.CreateGenreRequest) (cinemamodel.GenreResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createGenre, req)
}

func (q *Queries) DeleteGenre(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deleteGenre, id)
	return err
}

func (q *Queries) CreateCinema(ctx context.Context, req cinemamodel.CreateCinemaRequest) (cinemamodel.CinemaResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createCinema, req)
}

func (q *Queries) UpdateCinema(ctx context.Context, id int64, req cinemamodel.UpdateCinemaRequest) (cinemamodel.CinemaResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateCinema, Edit[cinemamodel.UpdateCinemaRequest]{ID: id, Req: req})
}

func (q *Queries) DeleteCinema(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deleteCinema, id)
	return err
}

func (q *Queries) CreateHall(ctx context.Context, req cinemamodel.CreateHallRequest) (cinemamodel.HallResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createHall, req)
}

func (q *Queries) UpdateHall(ctx context.Context, id int64, req cinemamodel.UpdateHallRequest) (cinemamodel.HallResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateHall, Edit[cinemamodel.UpdateHallRequest]{ID: id, Req: req})
}

func (q *Queries) DeleteHall(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deleteHall, id)
	return err
}

func (q *Queries) UpdateSeat(ctx context.Context, id int64, req cinemamodel.UpdateSeatRequest) (cinemamodel.SeatResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateSeat, Edit[cinemamodel.UpdateSeatRequest]{ID: id, Req: req})
}

func (q *Queries) CreateShow(ctx context.Context, req cinemamodel.CreateShowRequest) (cinemamodel.ShowResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createShow, req)
}

func (q *Queries) UpdateShow(ctx context.Context, id int64, req cinemamodel.UpdateShowRequest) (cinemamodel.ShowResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.updateShow, Edit[cinemamodel.UpdateShowRequest]{ID: id, Req: req})
}

func (q *Queries) DeleteShow(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.deleteShow, id)
	return err
}

func (q *Queries) CancelShow(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, q.cache, q.m.cancelShow, id)
	return err
}

func (q *Queries) CreateBooking(ctx context.Context, req cinemamodel.CreateBookingRequest) (cinemamodel.BookingResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createBooking, req)
}

func (q *Queries) Checkout(ctx context.Context, req cinemamodel.CheckoutRequest) (cinemamodel.BookingResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.checkout, req)
}

func (q *Queries) ConfirmPayment(ctx context.Context, req cinemamodel.ConfirmPaymentRequest) (cinemamodel.BookingResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.confirmPayment, req)
}

func (q *Queries) CancelBooking(ctx context.Context, code string) error {
	if err := requireCode(code); err != nil {
		return err
	}
	_, err := querycache.Mutate(ctx, q.cache, q.m.cancelBooking, code)
	return err
}

func (q *Queries) AdminCancelBooking(ctx context.Context, code string) error {
	if err := requireCode(code); err != nil {
		return err
	}
	_, err := querycache.Mutate(ctx, q.cache, q.m.adminCancelBooking, code)
	return err
}

// CreatePayment returns the gateway URL the customer must visit.
func (q *Queries) CreatePayment(ctx context.Context, req cinemamodel.CreatePaymentRequest) (cinemamodel.PaymentURLResponse, error) {
	return querycache.Mutate(ctx, q.cache, q.m.createPayment, req)
}

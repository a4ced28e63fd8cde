package queries

import (
	"context"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/jrsteele09/go-cinema-client/token"
	"github.com/pkg/errors"
)

type qc = querycache.Effect

// mutations is the declared table: every write that changes what the cache
// should hold, with the effect it has on success.
type mutations struct {
	login    querycache.Mutation[cinemamodel.LoginRequest, cinemamodel.AuthResponse]
	register querycache.Mutation[cinemamodel.RegisterRequest, cinemamodel.AuthResponse]
	logout   querycache.Mutation[struct{}, struct{}]

	updateProfile   querycache.Mutation[cinemamodel.UpdateProfileRequest, cinemamodel.UserResponse]
	adminUpdateUser querycache.Mutation[Edit[cinemamodel.AdminUpdateUserRequest], cinemamodel.UserResponse]
	addPoints       querycache.Mutation[PointsChange, struct{}]
	deductPoints    querycache.Mutation[PointsChange, struct{}]
	lockUser        querycache.Mutation[int64, struct{}]
	unlockUser      querycache.Mutation[int64, struct{}]
	updateStatus    querycache.Mutation[Edit[cinemamodel.UserStatus], cinemamodel.UserResponse]
	updateRole      querycache.Mutation[Edit[cinemamodel.Role], cinemamodel.UserResponse]

	createMovie       querycache.Mutation[cinemamodel.CreateMovieRequest, cinemamodel.MovieResponse]
	updateMovie       querycache.Mutation[Edit[cinemamodel.UpdateMovieRequest], cinemamodel.MovieResponse]
	deleteMovie       querycache.Mutation[int64, struct{}]
	updateMovieStatus querycache.Mutation[Edit[cinemamodel.MovieStatus], struct{}]
	createGenre       querycache.Mutation[cinemamodel.CreateGenreRequest, cinemamodel.GenreResponse]
	deleteGenre       querycache.Mutation[int64, struct{}]

	createCinema querycache.Mutation[cinemamodel.CreateCinemaRequest, cinemamodel.CinemaResponse]
	updateCinema querycache.Mutation[Edit[cinemamodel.UpdateCinemaRequest], cinemamodel.CinemaResponse]
	deleteCinema querycache.Mutation[int64, struct{}]
	createHall   querycache.Mutation[cinemamodel.CreateHallRequest, cinemamodel.HallResponse]
	updateHall   querycache.Mutation[Edit[cinemamodel.UpdateHallRequest], cinemamodel.HallResponse]
	deleteHall   querycache.Mutation[int64, struct{}]
	updateSeat   querycache.Mutation[Edit[cinemamodel.UpdateSeatRequest], cinemamodel.SeatResponse]

	createShow querycache.Mutation[cinemamodel.CreateShowRequest, cinemamodel.ShowResponse]
	updateShow querycache.Mutation[Edit[cinemamodel.UpdateShowRequest], cinemamodel.ShowResponse]
	deleteShow querycache.Mutation[int64, struct{}]
	cancelShow querycache.Mutation[int64, struct{}]

	createBooking      querycache.Mutation[cinemamodel.CreateBookingRequest, cinemamodel.BookingResponse]
	checkout           querycache.Mutation[cinemamodel.CheckoutRequest, cinemamodel.BookingResponse]
	confirmPayment     querycache.Mutation[cinemamodel.ConfirmPaymentRequest, cinemamodel.BookingResponse]
	cancelBooking      querycache.Mutation[string, struct{}]
	adminCancelBooking querycache.Mutation[string, struct{}]
	createPayment      querycache.Mutation[cinemamodel.CreatePaymentRequest, cinemamodel.PaymentURLResponse]
}

func (m *mutations) declared() []querycache.Declared {
	return []querycache.Declared{
		m.login, m.register, m.logout,
		m.updateProfile, m.adminUpdateUser, m.addPoints, m.deductPoints, m.lockUser, m.unlockUser, m.updateStatus, m.updateRole,
		m.createMovie, m.updateMovie, m.deleteMovie, m.updateMovieStatus, m.createGenre, m.deleteGenre,
		m.createCinema, m.updateCinema, m.deleteCinema, m.createHall, m.updateHall, m.deleteHall, m.updateSeat,
		m.createShow, m.updateShow, m.deleteShow, m.cancelShow,
		m.createBooking, m.checkout, m.confirmPayment, m.cancelBooking, m.adminCancelBooking, m.createPayment,
	}
}

func invalidate(keys ...querycache.Key) qc {
	return qc{Invalidates: keys}
}

func set(key querycache.Key, value any, invalidates ...querycache.Key) qc {
	return qc{Updates: []querycache.Update{{Key: key, Value: value}}, Invalidates: invalidates}
}

func ignoreResult[I any](fn func(context.Context, I) error) func(context.Context, I) (struct{}, error) {
	return func(ctx context.Context, in I) (struct{}, error) {
		return struct{}{}, fn(ctx, in)
	}
}

func newMutations(q *Queries) *mutations {
	svc := q.svc
	authEffect := func(out cinemamodel.AuthResponse) qc {
		return set(AuthKeys.CurrentUser(), out.User)
	}
	userAdminEffect := func(in int64, out cinemamodel.UserResponse) qc {
		return set(UserKeys.Detail(in), out, UserKeys.Lists())
	}
	movieEffect := func(id *int64) qc {
		keys := MovieKeys.Collections()
		if id != nil {
			keys = append(keys, MovieKeys.Detail(*id))
		}
		return invalidate(keys...)
	}
	showEffect := func(id *int64) qc {
		keys := ShowKeys.Schedules()
		if id != nil {
			keys = append(keys, ShowKeys.Detail(*id), ShowKeys.Seats(*id))
		}
		return invalidate(keys...)
	}

	return &mutations{
		login: querycache.Mutation[cinemamodel.LoginRequest, cinemamodel.AuthResponse]{
			Name: "auth.login",
			Run: func(ctx context.Context, in cinemamodel.LoginRequest) (cinemamodel.AuthResponse, error) {
				return q.establish(ctx, "Login", func() (cinemamodel.AuthResponse, error) { return svc.Auth.Login(ctx, in) })
			},
			Effect: func(_ cinemamodel.LoginRequest, out cinemamodel.AuthResponse) qc { return authEffect(out) },
		},
		register: querycache.Mutation[cinemamodel.RegisterRequest, cinemamodel.AuthResponse]{
			Name: "auth.register",
			Run: func(ctx context.Context, in cinemamodel.RegisterRequest) (cinemamodel.AuthResponse, error) {
				return q.establish(ctx, "Register", func() (cinemamodel.AuthResponse, error) { return svc.Auth.Register(ctx, in) })
			},
			Effect: func(_ cinemamodel.RegisterRequest, out cinemamodel.AuthResponse) qc { return authEffect(out) },
		},
		logout: querycache.Mutation[struct{}, struct{}]{
			Name: "auth.logout",
			Run: func(ctx context.Context, _ struct{}) (struct{}, error) {
				return struct{}{}, q.endSession(ctx)
			},
			Effect: func(struct{}, struct{}) qc { return qc{ClearAll: true} },
		},

		updateProfile: querycache.Mutation[cinemamodel.UpdateProfileRequest, cinemamodel.UserResponse]{
			Name: "users.updateProfile",
			Run: func(ctx context.Context, in cinemamodel.UpdateProfileRequest) (cinemamodel.UserResponse, error) {
				out, err := svc.Users.UpdateProfile(ctx, in)
				if err != nil {
					return out, err
				}
				if err := q.session.UpdateIdentity(ctx, out.IdentityPatch()); err != nil {
					q.log.Warn().Err(err).Msg("persisting updated identity")
				}
				return out, nil
			},
			Effect: func(_ cinemamodel.UpdateProfileRequest, out cinemamodel.UserResponse) qc {
				return set(UserKeys.Profile(), out, AuthKeys.CurrentUser(), UserKeys.Detail(out.ID))
			},
		},
		adminUpdateUser: querycache.Mutation[Edit[cinemamodel.AdminUpdateUserRequest], cinemamodel.UserResponse]{
			Name: "users.adminUpdate",
			Run: func(ctx context.Context, in Edit[cinemamodel.AdminUpdateUserRequest]) (cinemamodel.UserResponse, error) {
				return svc.Users.AdminUpdate(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.AdminUpdateUserRequest], out cinemamodel.UserResponse) qc {
				return userAdminEffect(in.ID, out)
			},
		},
		addPoints: querycache.Mutation[PointsChange, struct{}]{
			Name: "users.addPoints",
			Run: ignoreResult(func(ctx context.Context, in PointsChange) error {
				return svc.Users.AddPoints(ctx, in.UserID, in.Points)
			}),
			Effect: func(in PointsChange, _ struct{}) qc { return invalidate(UserKeys.Detail(in.UserID)) },
		},
		deductPoints: querycache.Mutation[PointsChange, struct{}]{
			Name: "users.deductPoints",
			Run: ignoreResult(func(ctx context.Context, in PointsChange) error {
				return svc.Users.DeductPoints(ctx, in.UserID, in.Points)
			}),
			Effect: func(in PointsChange, _ struct{}) qc { return invalidate(UserKeys.Detail(in.UserID)) },
		},
		lockUser: querycache.Mutation[int64, struct{}]{
			Name:   "users.lock",
			Run:    ignoreResult(svc.Users.Lock),
			Effect: func(id int64, _ struct{}) qc { return invalidate(UserKeys.Detail(id), UserKeys.Lists()) },
		},
		unlockUser: querycache.Mutation[int64, struct{}]{
			Name:   "users.unlock",
			Run:    ignoreResult(svc.Users.Unlock),
			Effect: func(id int64, _ struct{}) qc { return invalidate(UserKeys.Detail(id), UserKeys.Lists()) },
		},
		updateStatus: querycache.Mutation[Edit[cinemamodel.UserStatus], cinemamodel.UserResponse]{
			Name: "users.updateStatus",
			Run: func(ctx context.Context, in Edit[cinemamodel.UserStatus]) (cinemamodel.UserResponse, error) {
				return svc.Users.UpdateStatus(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.UserStatus], out cinemamodel.UserResponse) qc {
				return userAdminEffect(in.ID, out)
			},
		},
		updateRole: querycache.Mutation[Edit[cinemamodel.Role], cinemamodel.UserResponse]{
			Name: "users.updateRole",
			Run: func(ctx context.Context, in Edit[cinemamodel.Role]) (cinemamodel.UserResponse, error) {
				return svc.Users.UpdateRole(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.Role], out cinemamodel.UserResponse) qc { return userAdminEffect(in.ID, out) },
		},

		createMovie: querycache.Mutation[cinemamodel.CreateMovieRequest, cinemamodel.MovieResponse]{
			Name:   "movies.create",
			Run:    svc.Movies.Create,
			Effect: func(cinemamodel.CreateMovieRequest, cinemamodel.MovieResponse) qc { return movieEffect(nil) },
		},
		updateMovie: querycache.Mutation[Edit[cinemamodel.UpdateMovieRequest], cinemamodel.MovieResponse]{
			Name: "movies.update",
			Run: func(ctx context.Context, in Edit[cinemamodel.UpdateMovieRequest]) (cinemamodel.MovieResponse, error) {
				return svc.Movies.Update(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.UpdateMovieRequest], _ cinemamodel.MovieResponse) qc {
				return movieEffect(&in.ID)
			},
		},
		deleteMovie: querycache.Mutation[int64, struct{}]{
			Name:   "movies.delete",
			Run:    ignoreResult(svc.Movies.Delete),
			Effect: func(id int64, _ struct{}) qc { return movieEffect(&id) },
		},
		updateMovieStatus: querycache.Mutation[Edit[cinemamodel.MovieStatus], struct{}]{
			Name: "movies.updateStatus",
			Run: ignoreResult(func(ctx context.Context, in Edit[cinemamodel.MovieStatus]) error {
				return svc.Movies.UpdateStatus(ctx, in.ID, in.Req)
			}),
			Effect: func(in Edit[cinemamodel.MovieStatus], _ struct{}) qc { return movieEffect(&in.ID) },
		},
		createGenre: querycache.Mutation[cinemamodel.CreateGenreRequest, cinemamodel.GenreResponse]{
			Name: "genres.create",
			Run:  svc.Genres.Create,
			Effect: func(cinemamodel.CreateGenreRequest, cinemamodel.GenreResponse) qc {
				return invalidate(GenreKeys.List())
			},
		},
		deleteGenre: querycache.Mutation[int64, struct{}]{
			Name:   "genres.delete",
			Run:    ignoreResult(svc.Genres.Delete),
			Effect: func(int64, struct{}) qc { return invalidate(GenreKeys.All(), MovieKeys.Genres()) },
		},

		createCinema: querycache.Mutation[cinemamodel.CreateCinemaRequest, cinemamodel.CinemaResponse]{
			Name: "cinemas.create",
			Run:  svc.Cinemas.Create,
			Effect: func(cinemamodel.CreateCinemaRequest, cinemamodel.CinemaResponse) qc {
				return invalidate(CinemaKeys.Lists(), CinemaKeys.Cities(), CinemaKeys.Active(), CinemaKeys.CityLists())
			},
		},
		updateCinema: querycache.Mutation[Edit[cinemamodel.UpdateCinemaRequest], cinemamodel.CinemaResponse]{
			Name: "cinemas.update",
			Run: func(ctx context.Context, in Edit[cinemamodel.UpdateCinemaRequest]) (cinemamodel.CinemaResponse, error) {
				return svc.Cinemas.Update(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.UpdateCinemaRequest], _ cinemamodel.CinemaResponse) qc {
				return invalidate(CinemaKeys.Detail(in.ID), CinemaKeys.Lists(), CinemaKeys.Active(), CinemaKeys.CityLists())
			},
		},
		deleteCinema: querycache.Mutation[int64, struct{}]{
			Name: "cinemas.delete",
			Run:  ignoreResult(svc.Cinemas.Delete),
			Effect: func(id int64, _ struct{}) qc {
				return invalidate(CinemaKeys.Lists(), CinemaKeys.Detail(id), CinemaKeys.Active(), CinemaKeys.CityLists(), CinemaKeys.Cities())
			},
		},
		createHall: querycache.Mutation[cinemamodel.CreateHallRequest, cinemamodel.HallResponse]{
			Name: "halls.create",
			Run:  svc.Cinemas.CreateHall,
			Effect: func(in cinemamodel.CreateHallRequest, _ cinemamodel.HallResponse) qc {
				return invalidate(HallKeys.ByCinema(in.CinemaID), CinemaKeys.WithHalls(in.CinemaID))
			},
		},
		updateHall: querycache.Mutation[Edit[cinemamodel.UpdateHallRequest], cinemamodel.HallResponse]{
			Name: "halls.update",
			Run: func(ctx context.Context, in Edit[cinemamodel.UpdateHallRequest]) (cinemamodel.HallResponse, error) {
				return svc.Cinemas.UpdateHall(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.UpdateHallRequest], out cinemamodel.HallResponse) qc {
				return invalidate(HallKeys.Detail(in.ID), HallKeys.ByCinema(out.CinemaID), CinemaKeys.WithHalls(out.CinemaID))
			},
		},
		deleteHall: querycache.Mutation[int64, struct{}]{
			Name:   "halls.delete",
			Run:    ignoreResult(svc.Cinemas.DeleteHall),
			Effect: func(int64, struct{}) qc { return invalidate(HallKeys.All(), CinemaKeys.Details()) },
		},
		updateSeat: querycache.Mutation[Edit[cinemamodel.UpdateSeatRequest], cinemamodel.SeatResponse]{
			Name: "seats.update",
			Run: func(ctx context.Context, in Edit[cinemamodel.UpdateSeatRequest]) (cinemamodel.SeatResponse, error) {
				return svc.Cinemas.UpdateSeat(ctx, in.ID, in.Req)
			},
			Effect: func(_ Edit[cinemamodel.UpdateSeatRequest], out cinemamodel.SeatResponse) qc {
				return invalidate(HallKeys.WithSeats(out.HallID), ShowKeys.AllSeats())
			},
		},

		createShow: querycache.Mutation[cinemamodel.CreateShowRequest, cinemamodel.ShowResponse]{
			Name:   "shows.create",
			Run:    svc.Shows.Create,
			Effect: func(cinemamodel.CreateShowRequest, cinemamodel.ShowResponse) qc { return showEffect(nil) },
		},
		updateShow: querycache.Mutation[Edit[cinemamodel.UpdateShowRequest], cinemamodel.ShowResponse]{
			Name: "shows.update",
			Run: func(ctx context.Context, in Edit[cinemamodel.UpdateShowRequest]) (cinemamodel.ShowResponse, error) {
				return svc.Shows.Update(ctx, in.ID, in.Req)
			},
			Effect: func(in Edit[cinemamodel.UpdateShowRequest], _ cinemamodel.ShowResponse) qc { return showEffect(&in.ID) },
		},
		deleteShow: querycache.Mutation[int64, struct{}]{
			Name:   "shows.delete",
			Run:    ignoreResult(svc.Shows.Delete),
			Effect: func(id int64, _ struct{}) qc { return showEffect(&id) },
		},
		cancelShow: querycache.Mutation[int64, struct{}]{
			Name:   "shows.cancel",
			Run:    ignoreResult(svc.Shows.Cancel),
			Effect: func(id int64, _ struct{}) qc { return showEffect(&id) },
		},

		createBooking: querycache.Mutation[cinemamodel.CreateBookingRequest, cinemamodel.BookingResponse]{
			Name: "bookings.create",
			Run:  svc.Booking.Create,
			Effect: func(in cinemamodel.CreateBookingRequest, out cinemamodel.BookingResponse) qc {
				return set(BookingKeys.Detail(out.BookingCode), out,
					BookingKeys.MyBookings(), ShowKeys.Seats(in.ShowID), ShowKeys.Detail(in.ShowID))
			},
		},
		checkout: querycache.Mutation[cinemamodel.CheckoutRequest, cinemamodel.BookingResponse]{
			Name: "bookings.checkout",
			Run:  svc.Booking.Checkout,
			Effect: func(_ cinemamodel.CheckoutRequest, out cinemamodel.BookingResponse) qc {
				return set(BookingKeys.Detail(out.BookingCode), out)
			},
		},
		confirmPayment: querycache.Mutation[cinemamodel.ConfirmPaymentRequest, cinemamodel.BookingResponse]{
			Name: "bookings.confirmPayment",
			Run:  svc.Booking.ConfirmPayment,
			Effect: func(in cinemamodel.ConfirmPaymentRequest, out cinemamodel.BookingResponse) qc {
				return set(BookingKeys.Detail(out.BookingCode), out, BookingKeys.MyBookings(), PaymentKeys.Status(in.BookingCode))
			},
		},
		cancelBooking: querycache.Mutation[string, struct{}]{
			Name: "bookings.cancel",
			Run:  ignoreResult(svc.Booking.Cancel),
			Effect: func(code string, _ struct{}) qc {
				return invalidate(BookingKeys.Detail(code), BookingKeys.MyBookings(), ShowKeys.AllSeats())
			},
		},
		adminCancelBooking: querycache.Mutation[string, struct{}]{
			Name: "bookings.adminCancel",
			Run:  ignoreResult(svc.Booking.AdminCancel),
			Effect: func(code string, _ struct{}) qc {
				return invalidate(BookingKeys.Detail(code), BookingKeys.Lists(), ShowKeys.AllSeats())
			},
		},
		createPayment: querycache.Mutation[cinemamodel.CreatePaymentRequest, cinemamodel.PaymentURLResponse]{
			Name: "payments.create",
			Run:  svc.Payment.Create,
			Effect: func(in cinemamodel.CreatePaymentRequest, _ cinemamodel.PaymentURLResponse) qc {
				return invalidate(PaymentKeys.Status(in.BookingCode), BookingKeys.Detail(in.BookingCode))
			},
		},
	}
}

// establish stores the session for a successful login or register. The in-memory
// session is set even when persisting it fails.
func (q *Queries) establish(ctx context.Context, op string, call func() (cinemamodel.AuthResponse, error)) (cinemamodel.AuthResponse, error) {
	resp, err := call()
	if err != nil {
		return resp, err
	}
	tok, err := token.FromAuthResponse(resp, q.now())
	if err != nil {
		return resp, errors.Wrapf(err, "[Queries.%s] token.FromAuthResponse", op)
	}
	if err := q.session.SetAuth(ctx, resp.User, tok); err != nil {
		q.log.Warn().Err(err).Str("user", resp.User.Username).Msg("persisting session")
	}
	q.log.Info().Str("user", resp.User.Username).Str("role", string(resp.User.Role)).Msg("signed in")
	return resp, nil
}

// endSession revokes server-side and then drops local state. A 401 means the
// server already considers the session gone, so it counts as success. Any other
// failure still ends the local session, which also drops the refresh credential,
// clears the cache and is returned.
func (q *Queries) endSession(ctx context.Context) error {
	err := q.svc.Auth.Logout(ctx)
	if err != nil && api.IsUnauthorized(err) {
		err = nil
	}
	if lerr := q.session.Logout(ctx); lerr != nil {
		q.log.Warn().Err(lerr).Msg("persisting logout")
	}
	if err != nil {
		q.cache.Clear()
		return err
	}
	return nil
}

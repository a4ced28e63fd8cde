package services

// API path constants, relative to the configured base URL.
// Paths with a %d or %s verb take the identifier as their single argument.
const (
	// Auth - session lifecycle
	RouteAuthLogin    = "/auth/login"
	RouteAuthRegister = "/auth/register"
	RouteAuthRefresh  = "/auth/refresh"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthMe       = "/auth/me"

	// Users - self service
	RouteUserProfile        = "/users/profile"
	RouteUserChangePassword = "/users/change-password"

	// Users - admin
	RouteUsers            = "/users"
	RouteUser             = "/users/%d"
	RouteUserByUsername   = "/users/username/%s"
	RouteUserAddPoints    = "/users/%d/add-points"
	RouteUserDeductPoints = "/users/%d/deduct-points"
	RouteUserLock         = "/users/%d/lock"
	RouteUserUnlock       = "/users/%d/unlock"
	RouteAdminUserStatus  = "/admin/users/%d/status"
	RouteAdminUserRole    = "/admin/users/%d/role"

	// Movies
	RouteMovies           = "/movies"
	RouteMovie            = "/movies/%d"
	RouteMoviesNowShowing = "/movies/now-showing"
	RouteMoviesComingSoon = "/movies/coming-soon"
	RouteMoviesSearch     = "/movies/search"
	RouteMoviesByGenre    = "/movies/genre/%d"
	RouteMoviesByStatus   = "/movies/status/%s"
	RouteAdminMovies      = "/admin/movies"
	RouteAdminMovie       = "/admin/movies/%d"
	RouteAdminMovieStatus = "/admin/movies/%d/status"

	// Genres
	RouteGenres      = "/genres"
	RouteGenre       = "/genres/%d"
	RouteAdminGenres = "/admin/movies/genres"
	RouteAdminGenre  = "/admin/movies/genres/%d"

	// Cinemas
	RouteCinemas         = "/cinemas"
	RouteCinema          = "/cinemas/%d"
	RouteCinemaWithHalls = "/cinemas/%d/with-halls"
	RouteCinemasActive   = "/cinemas/active"
	RouteCinemasByCity   = "/cinemas/city/%s"
	RouteCinemasCities   = "/cinemas/cities"
	RouteCinemasSearch   = "/cinemas/search"
	RouteAdminCinemas    = "/admin/cinemas"
	RouteAdminCinema     = "/admin/cinemas/%d"

	// Halls and seats
	RouteHall          = "/halls/%d"
	RouteHallWithSeats = "/halls/%d/with-seats"
	RouteHallsByCinema = "/halls/cinema/%d"
	RouteAdminHalls    = "/admin/halls"
	RouteAdminHall     = "/admin/halls/%d"
	RouteAdminSeat     = "/admin/seats/%d"

	// Shows
	RouteShows            = "/shows"
	RouteShow             = "/shows/%d"
	RouteShowSeats        = "/shows/%d/seats"
	RouteShowsByMovie     = "/shows/movie/%d"
	RouteShowsByCinema    = "/shows/cinema/%d"
	RouteAdminShowsByHall = "/admin/shows/by-hall/%d"
	RouteAdminShows       = "/admin/shows"
	RouteAdminShow        = "/admin/shows/%d"
	RouteAdminShowCancel  = "/admin/shows/%d/cancel"

	// Bookings
	RouteBookings           = "/bookings"
	RouteBooking            = "/bookings/%s"
	RouteBookingCheckout    = "/bookings/checkout"
	RouteBookingConfirm     = "/bookings/confirm-payment"
	RouteBookingCancel      = "/bookings/%s/cancel"
	RouteMyBookings         = "/bookings/my-bookings"
	RouteAdminBookings      = "/bookings/admin/all"
	RouteAdminBookingCancel = "/bookings/admin/%s/cancel"

	// Payments
	RoutePaymentCreate = "/payments/create"
	RoutePaymentStatus = "/payments/status/%s"

	// Files
	RouteUploadImage         = "/files/upload/image"
	RouteUploadMoviePoster   = "/files/upload/movie-poster"
	RouteUploadMovieBackdrop = "/files/upload/movie-backdrop"
	RouteUploadImages        = "/files/upload/images"
	RouteFileDelete          = "/files/delete"
)

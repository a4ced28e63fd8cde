package queries

import (
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/querycache"
)

// Key factories per resource family. Collection keys are prefixes of the keys
// they cover, so one invalidation reaches every filter combination.
var (
	AuthKeys    = authKeys{root: querycache.MustKey("auth")}
	UserKeys    = userKeys{root: querycache.MustKey("users")}
	MovieKeys   = movieKeys{root: querycache.MustKey("movies")}
	GenreKeys   = genreKeys{root: querycache.MustKey("genres")}
	CinemaKeys  = cinemaKeys{root: querycache.MustKey("cinemas")}
	HallKeys    = hallKeys{root: querycache.MustKey("halls")}
	ShowKeys    = showKeys{root: querycache.MustKey("shows")}
	BookingKeys = bookingKeys{root: querycache.MustKey("bookings")}
	PaymentKeys = paymentKeys{root: querycache.MustKey("payments")}
)

func pageFilters(p cinemamodel.PageParams) querycache.Filters {
	return querycache.Filters{"page": p.Page, "size": p.Size}
}

type authKeys struct{ root querycache.Key }

func (k authKeys) All() querycache.Key         { return k.root }
func (k authKeys) CurrentUser() querycache.Key { return k.root.With("current-user") }

type userKeys struct{ root querycache.Key }

func (k userKeys) All() querycache.Key     { return k.root }
func (k userKeys) Lists() querycache.Key   { return k.root.With("list") }
func (k userKeys) Details() querycache.Key { return k.root.With("detail") }
func (k userKeys) Profile() querycache.Key { return k.root.With("profile") }

func (k userKeys) List(p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(pageFilters(p))
}

func (k userKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

func (k userKeys) ByUsername(username string) querycache.Key {
	return k.root.With("username", username)
}

type movieKeys struct{ root querycache.Key }

func (k movieKeys) All() querycache.Key        { return k.root }
func (k movieKeys) Lists() querycache.Key      { return k.root.With("list") }
func (k movieKeys) Details() querycache.Key    { return k.root.With("detail") }
func (k movieKeys) NowShowing() querycache.Key { return k.root.With("now-showing") }
func (k movieKeys) ComingSoon() querycache.Key { return k.root.With("coming-soon") }
func (k movieKeys) Searches() querycache.Key   { return k.root.With("search") }
func (k movieKeys) Genres() querycache.Key     { return k.root.With("genre") }
func (k movieKeys) Statuses() querycache.Key   { return k.root.With("status") }

func (k movieKeys) List(p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(pageFilters(p))
}

func (k movieKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

func (k movieKeys) Search(keyword string, p cinemamodel.PageParams) querycache.Key {
	return k.Searches().With(keyword, pageFilters(p))
}

func (k movieKeys) ByGenre(genreID int64, p cinemamodel.PageParams) querycache.Key {
	return k.Genres().With(genreID, pageFilters(p))
}

func (k movieKeys) ByStatus(status cinemamodel.MovieStatus, p cinemamodel.PageParams) querycache.Key {
	return k.Statuses().With(status, pageFilters(p))
}

// Collections is every key a catalogue change can make stale, details excluded.
func (k movieKeys) Collections() []querycache.Key {
	return []querycache.Key{k.Lists(), k.NowShowing(), k.ComingSoon(), k.Searches(), k.Genres(), k.Statuses()}
}

type genreKeys struct{ root querycache.Key }

func (k genreKeys) All() querycache.Key     { return k.root }
func (k genreKeys) List() querycache.Key    { return k.root.With("list") }
func (k genreKeys) Details() querycache.Key { return k.root.With("detail") }

func (k genreKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

type cinemaKeys struct{ root querycache.Key }

func (k cinemaKeys) All() querycache.Key       { return k.root }
func (k cinemaKeys) Lists() querycache.Key     { return k.root.With("list") }
func (k cinemaKeys) Details() querycache.Key   { return k.root.With("detail") }
func (k cinemaKeys) Active() querycache.Key    { return k.root.With("active") }
func (k cinemaKeys) Cities() querycache.Key    { return k.root.With("cities") }
func (k cinemaKeys) CityLists() querycache.Key { return k.root.With("city") }

func (k cinemaKeys) List(p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(pageFilters(p))
}

// Search lives under Lists, matching the filtered-list shape.
func (k cinemaKeys) Search(keyword string, p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(querycache.Filters{"keyword": keyword, "page": p.Page, "size": p.Size})
}

func (k cinemaKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

func (k cinemaKeys) WithHalls(id int64) querycache.Key {
	return k.Detail(id).With("halls")
}

func (k cinemaKeys) ByCity(city string, p cinemamodel.PageParams) querycache.Key {
	return k.CityLists().With(city, pageFilters(p))
}

type hallKeys struct{ root querycache.Key }

func (k hallKeys) All() querycache.Key     { return k.root }
func (k hallKeys) Details() querycache.Key { return k.root.With("detail") }

func (k hallKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

func (k hallKeys) WithSeats(id int64) querycache.Key {
	return k.Detail(id).With("seats")
}

func (k hallKeys) ByCinema(cinemaID int64) querycache.Key {
	return k.root.With("cinema", cinemaID)
}

type showKeys struct{ root querycache.Key }

func (k showKeys) All() querycache.Key      { return k.root }
func (k showKeys) Lists() querycache.Key    { return k.root.With("list") }
func (k showKeys) Details() querycache.Key  { return k.root.With("detail") }
func (k showKeys) AllSeats() querycache.Key { return k.root.With("seats") }
func (k showKeys) Movies() querycache.Key   { return k.root.With("movie") }
func (k showKeys) Cinemas() querycache.Key  { return k.root.With("cinema") }
func (k showKeys) Halls() querycache.Key    { return k.root.With("hall") }

func (k showKeys) List(status *cinemamodel.ShowStatus, p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(querycache.Filters{"status": status, "page": p.Page, "size": p.Size})
}

func (k showKeys) Detail(id int64) querycache.Key {
	return k.Details().With(id)
}

func (k showKeys) Seats(showID int64) querycache.Key {
	return k.AllSeats().With(showID)
}

func (k showKeys) ByMovie(movieID int64, r cinemamodel.ShowDateRange) querycache.Key {
	return k.Movies().With(movieID, querycache.Filters{"startDate": r.StartDate, "endDate": r.EndDate})
}

func (k showKeys) ByCinema(cinemaID int64, date *string) querycache.Key {
	return k.Cinemas().With(cinemaID, querycache.Filters{"date": date})
}

func (k showKeys) ByHall(hallID int64, date string) querycache.Key {
	return k.Halls().With(hallID, date)
}

// Schedules is every key listing shows, details and seat maps excluded.
func (k showKeys) Schedules() []querycache.Key {
	return []querycache.Key{k.Lists(), k.Movies(), k.Cinemas(), k.Halls()}
}

type bookingKeys struct{ root querycache.Key }

func (k bookingKeys) All() querycache.Key        { return k.root }
func (k bookingKeys) Lists() querycache.Key      { return k.root.With("list") }
func (k bookingKeys) Details() querycache.Key    { return k.root.With("detail") }
func (k bookingKeys) MyBookings() querycache.Key { return k.root.With("my-bookings") }

func (k bookingKeys) List(status *cinemamodel.BookingStatus, p cinemamodel.PageParams) querycache.Key {
	return k.Lists().With(querycache.Filters{"status": status, "page": p.Page, "size": p.Size})
}

func (k bookingKeys) Detail(code string) querycache.Key {
	return k.Details().With(code)
}

func (k bookingKeys) MyBookingsPage(p cinemamodel.PageParams) querycache.Key {
	return k.MyBookings().With(p.Page, p.Size)
}

type paymentKeys struct{ root querycache.Key }

func (k paymentKeys) All() querycache.Key { return k.root }

func (k paymentKeys) Status(bookingCode string) querycache.Key {
	return k.root.With("status", bookingCode)
}

package queries

import (
	"time"

	"github.com/jrsteele09/go-cinema-client/querycache"
)

// Staleness and polling per query, reflecting how often each resource changes.
var (
	IdentityPolicy     = querycache.Policy{StaleTime: 5 * time.Minute}
	UserListPolicy     = querycache.Policy{StaleTime: 2 * time.Minute}
	MovieDetailPolicy  = querycache.Policy{StaleTime: 5 * time.Minute}
	MovieListPolicy    = querycache.Policy{StaleTime: 2 * time.Minute}
	MovieFeedPolicy    = querycache.Policy{StaleTime: 5 * time.Minute}
	GenrePolicy        = querycache.Policy{StaleTime: 10 * time.Minute}
	CinemaPolicy       = querycache.Policy{StaleTime: 5 * time.Minute}
	CityPolicy         = querycache.Policy{StaleTime: 10 * time.Minute}
	CinemaSearchPolicy = querycache.Policy{StaleTime: 2 * time.Minute}
	HallPolicy         = querycache.Policy{StaleTime: 5 * time.Minute}
	ShowPolicy         = querycache.Policy{StaleTime: time.Minute}
	ShowListPolicy     = querycache.Policy{StaleTime: 2 * time.Minute}

	// Seat maps change as other customers lock seats.
	ShowSeatsPolicy = querycache.Policy{StaleTime: 30 * time.Second, PollInterval: 30 * time.Second}

	BookingPolicy     = querycache.Policy{StaleTime: 30 * time.Second, PollInterval: time.Minute}
	BookingListPolicy = querycache.Policy{StaleTime: time.Minute}

	PaymentStatusPolicy = querycache.Policy{StaleTime: 10 * time.Second, PollInterval: 5 * time.Second}
)

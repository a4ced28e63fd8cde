package cinemamodel

type ShowStatus string

const (
	ShowScheduled ShowStatus = "SCHEDULED"
	ShowShowing   ShowStatus = "SHOWING"
	ShowCompleted ShowStatus = "COMPLETED"
	ShowCancelled ShowStatus = "CANCELLED"
)

// ShowSeatStatus is server-authoritative; the client only displays it.
type ShowSeatStatus string

const (
	ShowSeatAvailable ShowSeatStatus = "AVAILABLE"
	ShowSeatLocked    ShowSeatStatus = "LOCKED"
	ShowSeatSold      ShowSeatStatus = "SOLD"
)

type ShowResponse struct {
	ID             int64      `json:"id"`
	MovieID        int64      `json:"movieId"`
	MovieTitle     string     `json:"movieTitle"`
	HallID         int64      `json:"hallId"`
	HallName       string     `json:"hallName"`
	CinemaID       int64      `json:"cinemaId"`
	CinemaName     string     `json:"cinemaName"`
	ShowDate       string     `json:"showDate"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	BasePrice      float64    `json:"basePrice"`
	Status         ShowStatus `json:"status"`
	AvailableSeats int        `json:"availableSeats"`
	TotalSeats     int        `json:"totalSeats"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

type CreateShowRequest struct {
	MovieID   int64   `json:"movieId"`
	HallID    int64   `json:"hallId"`
	ShowDate  string  `json:"showDate"`
	StartTime string  `json:"startTime"`
	BasePrice float64 `json:"basePrice"`
}

type UpdateShowRequest struct {
	ShowDate  *string     `json:"showDate,omitempty"`
	StartTime *string     `json:"startTime,omitempty"`
	BasePrice *float64    `json:"basePrice,omitempty"`
	Status    *ShowStatus `json:"status,omitempty"`
}

type ShowSeatResponse struct {
	ID             int64          `json:"id"`
	ShowID         int64          `json:"showId"`
	SeatID         int64          `json:"seatId"`
	RowName        string         `json:"rowName"`
	SeatNumber     int            `json:"seatNumber"`
	SeatType       SeatType       `json:"seatType"`
	Price          float64        `json:"price"`
	Status         ShowSeatStatus `json:"status"`
	LockedUntil    *string        `json:"lockedUntil,omitempty"`
	LockedByUserID *int64         `json:"lockedByUserId,omitempty"`
}

// ShowDateRange filters shows by movie. Dates are ISO yyyy-mm-dd strings.
type ShowDateRange struct {
	StartDate *string
	EndDate   *string
}

package cinemamodel

// VenueStatus applies to cinemas, halls and physical seats.
type VenueStatus string

const (
	VenueActive      VenueStatus = "ACTIVE"
	VenueInactive    VenueStatus = "INACTIVE"
	VenueMaintenance VenueStatus = "MAINTENANCE"
)

type SeatType string

const (
	SeatNormal SeatType = "NORMAL"
	SeatVIP    SeatType = "VIP"
	SeatCouple SeatType = "COUPLE"
)

type CinemaResponse struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	District     *string        `json:"district,omitempty"`
	PhoneNumber  string         `json:"phoneNumber"`
	Email        *string        `json:"email,omitempty"`
	OpeningHours *string        `json:"openingHours,omitempty"`
	Facilities   *string        `json:"facilities,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	MapURL       *string        `json:"mapUrl,omitempty"`
	ImageURL     *string        `json:"imageUrl,omitempty"`
	Status       VenueStatus    `json:"status"`
	Halls        []HallResponse `json:"halls,omitempty"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type CreateCinemaRequest struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	District     *string  `json:"district,omitempty"`
	PhoneNumber  string   `json:"phoneNumber"`
	Email        *string  `json:"email,omitempty"`
	OpeningHours *string  `json:"openingHours,omitempty"`
	Facilities   *string  `json:"facilities,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	MapURL       *string  `json:"mapUrl,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
}

type UpdateCinemaRequest struct {
	Name         *string      `json:"name,omitempty"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty"`
	District     *string      `json:"district,omitempty"`
	PhoneNumber  *string      `json:"phoneNumber,omitempty"`
	Email        *string      `json:"email,omitempty"`
	OpeningHours *string      `json:"openingHours,omitempty"`
	Facilities   *string      `json:"facilities,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	MapURL       *string      `json:"mapUrl,omitempty"`
	ImageURL     *string      `json:"imageUrl,omitempty"`
	Status       *VenueStatus `json:"status,omitempty"`
}

type HallResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	CinemaID    int64          `json:"cinemaId"`
	CinemaName  *string        `json:"cinemaName,omitempty"`
	TotalSeats  int            `json:"totalSeats"`
	TotalRows   int            `json:"totalRows"`
	SeatsPerRow int            `json:"seatsPerRow"`
	ScreenType  *string        `json:"screenType,omitempty"`
	SoundSystem *string        `json:"soundSystem,omitempty"`
	Status      VenueStatus    `json:"status"`
	Seats       []SeatResponse `json:"seats,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type CreateHallRequest struct {
	Name        string  `json:"name"`
	CinemaID    int64   `json:"cinemaId"`
	TotalRows   int     `json:"totalRows"`
	SeatsPerRow int     `json:"seatsPerRow"`
	ScreenType  *string `json:"screenType,omitempty"`
	SoundSystem *string `json:"soundSystem,omitempty"`
}

type UpdateHallRequest struct {
	Name        *string      `json:"name,omitempty"`
	ScreenType  *string      `json:"screenType,omitempty"`
	SoundSystem *string      `json:"soundSystem,omitempty"`
	Status      *VenueStatus `json:"status,omitempty"`
}

type SeatResponse struct {
	ID         int64       `json:"id"`
	HallID     int64       `json:"hallId"`
	RowName    string      `json:"rowName"`
	SeatNumber int         `json:"seatNumber"`
	SeatType   SeatType    `json:"seatType"`
	Status     VenueStatus `json:"status"`
}

type UpdateSeatRequest struct {
	SeatType *SeatType    `json:"seatType,omitempty"`
	Status   *VenueStatus `json:"status,omitempty"`
}

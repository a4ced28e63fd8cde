package cinemamodel

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

type BookingResponse struct {
	ID             int64                 `json:"id"`
	BookingCode    string                `json:"bookingCode"`
	UserID         int64                 `json:"userId"`
	UserName       string                `json:"userName"`
	UserEmail      string                `json:"userEmail"`
	ShowID         int64                 `json:"showId"`
	ShowDate       string                `json:"showDate"`
	ShowStartTime  string                `json:"showStartTime"`
	MovieTitle     string                `json:"movieTitle"`
	CinemaName     string                `json:"cinemaName"`
	HallName       string                `json:"hallName"`
	TotalAmount    float64               `json:"totalAmount"`
	DiscountAmount float64               `json:"discountAmount"`
	PointsUsed     int                   `json:"pointsUsed"`
	FinalAmount    float64               `json:"finalAmount"`
	Status         BookingStatus         `json:"status"`
	Seats          []BookingSeatResponse `json:"seats"`
	ExpiresAt      *string               `json:"expiresAt,omitempty"`
	ConfirmedAt    *string               `json:"confirmedAt,omitempty"`
	CreatedAt      string                `json:"createdAt"`
	UpdatedAt      string                `json:"updatedAt"`
}

type BookingSeatResponse struct {
	ID         int64    `json:"id"`
	SeatID     int64    `json:"seatId"`
	RowName    string   `json:"rowName"`
	SeatNumber int      `json:"seatNumber"`
	SeatType   SeatType `json:"seatType"`
	Price      float64  `json:"price"`
}

type CreateBookingRequest struct {
	ShowID  int64   `json:"showId"`
	SeatIDs []int64 `json:"seatIds"`
}

type CheckoutRequest struct {
	BookingCode string `json:"bookingCode"`
	PointsToUse *int   `json:"pointsToUse,omitempty"`
}

type ConfirmPaymentRequest struct {
	BookingCode   string `json:"bookingCode"`
	TransactionID string `json:"transactionId"`
}

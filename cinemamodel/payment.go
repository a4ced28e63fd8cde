package cinemamodel

type PaymentMethod string

const (
	PaymentVNPay   PaymentMethod = "VNPAY"
	PaymentMoMo    PaymentMethod = "MOMO"
	PaymentZaloPay PaymentMethod = "ZALOPAY"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentNone      PaymentStatus = "NO_PAYMENT"
)

// Settled reports whether the status can no longer change without operator action.
func (s PaymentStatus) Settled() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

type CreatePaymentRequest struct {
	BookingCode   string        `json:"bookingCode"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

type PaymentURLResponse struct {
	PaymentURL  string  `json:"paymentUrl"`
	BookingCode string  `json:"bookingCode"`
	Amount      float64 `json:"amount"`
	ExpiresAt   string  `json:"expiresAt"`
}

type PaymentStatusResponse struct {
	BookingCode   string        `json:"bookingCode"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        *float64      `json:"amount,omitempty"`
	TransactionID *string       `json:"transactionId,omitempty"`
	PaidAt        *string       `json:"paidAt,omitempty"`
}

type FileUploadResponse struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
}

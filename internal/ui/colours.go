// Package ui holds the terminal colours the CLI uses for seat maps and payments.
package ui

import "github.com/jrsteele09/go-cinema-client/cinemamodel"

const (
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m" // bright black

	ResetColor = "\033[0m"
)

var seatColors = map[cinemamodel.ShowSeatStatus]string{
	cinemamodel.ShowSeatAvailable: Green,
	cinemamodel.ShowSeatLocked:    Yellow,
	cinemamodel.ShowSeatSold:      Red,
}

var paymentColors = map[cinemamodel.PaymentStatus]string{
	cinemamodel.PaymentPending:   Yellow,
	cinemamodel.PaymentCompleted: Green,
	cinemamodel.PaymentFailed:    Red,
	cinemamodel.PaymentCancelled: Red,
	cinemamodel.PaymentRefunded:  Cyan,
}

func Seat(s cinemamodel.ShowSeatStatus, label string) string {
	return colorize(seatColors[s], label)
}

func Payment(s cinemamodel.PaymentStatus) string {
	return colorize(paymentColors[s], string(s))
}

func colorize(color, s string) string {
	if color == "" {
		color = Gray
	}
	return color + s + ResetColor
}

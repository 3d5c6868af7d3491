package quote_booking

import (
	"context"

	quoteBooking "github.com/d4nchik/VH-BookingService/internal/usecase/quote_booking"
)

type QuoteBookingUseCase interface {
	Execute(ctx context.Context, req *quoteBooking.Request) (*quoteBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

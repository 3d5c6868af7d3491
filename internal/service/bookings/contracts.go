package bookings

import (
	"context"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// VenueCache интерфейс кеша профилей площадок
type VenueCache interface {
	Invalidate(ctx context.Context, venueID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

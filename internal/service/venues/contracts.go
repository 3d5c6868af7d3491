package venues

import (
	"context"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error)
}

// VenueCache интерфейс кеша профилей площадок
type VenueCache interface {
	Get(ctx context.Context, venueID int64) (*domain.Venue, error)
	Set(ctx context.Context, venue *domain.Venue) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

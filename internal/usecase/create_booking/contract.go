package create_booking

import (
	"context"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/internal/integrations/paymentservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByVenueWithFilter в транзакции читает бронирования даты с блокировкой FOR UPDATE
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// VenueCache интерфейс кеша профилей площадок
type VenueCache interface {
	Invalidate(ctx context.Context, venueID int64) error
}

// PaymentClient интерфейс клиента платежного сервиса
type PaymentClient interface {
	InitiatePaymentWithGracefulDegradation(ctx context.Context, req paymentservice.InitiatePaymentRequest) (*paymentservice.Payment, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции с retry при конфликтах
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

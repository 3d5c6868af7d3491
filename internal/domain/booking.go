package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingPayment    BookingStatus = "pending_payment"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByUser   BookingStatus = "cancelled_by_user"
	StatusCancelledByVendor BookingStatus = "cancelled_by_vendor"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking represents a venue reservation in the system
type Booking struct {
	ID          int64
	UserID      int64
	VenueID     int64
	BookingDate time.Time
	Timeslots   []TimeInterval
	Status      BookingStatus

	// Denormalized data for history
	VenueName  string
	TotalPrice float64
	Services   []BookedService
	Notes      *string

	// Референс для платежного шлюза (непрозрачен для этого сервиса)
	PaymentRef *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookedService денормализованная услуга, выбранная при бронировании
// Название и цена фиксируются на момент создания
type BookedService struct {
	ServiceID int64
	Name      string
	Price     float64
}

// IsActive returns true if the booking occupies its timeslots
// Отмененные и no-show бронирования не учитываются при расчете доступности
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByVendor &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByVendor
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}

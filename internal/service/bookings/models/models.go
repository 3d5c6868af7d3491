package models

import (
	"errors"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	UserID          int64      `json:"userId"`
	VenueID         int64      `json:"venueId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	VenueID     int64          `json:"venueId"`
	BookingDate string         `json:"bookingDate"` // "2025-10-15"
	Timeslots   []TimeslotDTO  `json:"timeslots"`
	Status      string         `json:"status"`

	// Денормализованные данные
	VenueName  string              `json:"venueName"`
	TotalPrice float64             `json:"totalPrice"`
	Services   []BookedServiceDTO  `json:"services"`
	Notes      *string             `json:"notes,omitempty"`

	PaymentRef *string `json:"paymentRef,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeslotDTO занятый интервал бронирования
type TimeslotDTO struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// BookedServiceDTO зафиксированная услуга бронирования
type BookedServiceDTO struct {
	ServiceID int64   `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	timeslots := make([]TimeslotDTO, 0, len(b.Timeslots))
	for _, ts := range b.Timeslots {
		timeslots = append(timeslots, TimeslotDTO{
			StartTime: string(ts.Start),
			EndTime:   string(ts.End),
		})
	}

	services := make([]BookedServiceDTO, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, BookedServiceDTO{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
		})
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		VenueID:            b.VenueID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		Timeslots:          timeslots,
		Status:             string(b.Status),
		VenueName:          b.VenueName,
		TotalPrice:         b.TotalPrice,
		Services:           services,
		Notes:              b.Notes,
		PaymentRef:         b.PaymentRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPendingPayment,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByVendor,
		domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

package create_booking

import (
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	createBooking "github.com/d4nchik/VH-BookingService/internal/usecase/create_booking"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID     int64   `json:"venueId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "12:00"
	ServiceIDs  []int64 `json:"serviceIds,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userId"`
	VenueID     int64            `json:"venueId"`
	VenueName   string           `json:"venueName"`
	BookingDate string           `json:"bookingDate"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Status      string           `json:"status"`
	Services    []BookedService  `json:"services"`
	TotalPrice  float64          `json:"totalPrice"`
	PaymentRef  *string          `json:"paymentRef,omitempty"`
	PaymentURL  *string          `json:"paymentUrl,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

// BookedService зафиксированная услуга бронирования
type BookedService struct {
	ServiceID int64   `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		VenueID:    r.VenueID,
		Date:       bookingDate,
		StartTime:  startTime,
		EndTime:    endTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookedService, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = BookedService{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
		}
	}

	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		VenueID:     resp.VenueID,
		VenueName:   resp.VenueName,
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		Services:    services,
		TotalPrice:  resp.TotalPrice,
		PaymentRef:  resp.PaymentRef,
		PaymentURL:  resp.PaymentURL,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}

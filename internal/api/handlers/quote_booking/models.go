package quote_booking

import (
	quoteBooking "github.com/d4nchik/VH-BookingService/internal/usecase/quote_booking"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	StartTime  string  `json:"startTime"` // "10:00"
	EndTime    string  `json:"endTime"`   // "12:00"
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	VenueID         int64            `json:"venueId"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	PricePerHour    float64          `json:"pricePerHour"`
	BasePrice       float64          `json:"basePrice"`
	Services        []QuotedService  `json:"services"`
	TotalPrice      float64          `json:"totalPrice"`
}

// QuotedService услуга в расшифровке стоимости
type QuotedService struct {
	ServiceID int64   `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(venueID int64) (*quoteBooking.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &quoteBooking.Request{
		VenueID:    venueID,
		StartTime:  startTime,
		EndTime:    endTime,
		ServiceIDs: r.ServiceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteBooking.Response) *QuoteResponse {
	services := make([]QuotedService, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = QuotedService{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
		}
	}

	return &QuoteResponse{
		VenueID:         resp.VenueID,
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		PricePerHour:    resp.PricePerHour,
		BasePrice:       resp.BasePrice,
		Services:        services,
		TotalPrice:      resp.TotalPrice,
	}
}

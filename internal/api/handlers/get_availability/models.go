package get_availability

import (
	getAvailability "github.com/d4nchik/VH-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID     int64               `json:"venueId"`
	VenueName   string              `json:"venueName"`
	WindowDays  int                 `json:"windowDays"`
	Dates       []string            `json:"dates"`
	SlotsByDate map[string][]string `json:"slotsByDate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slotsByDate := make(map[string][]string, len(resp.SlotsByDate))
	for date, slots := range resp.SlotsByDate {
		strs := make([]string, len(slots))
		for i, slot := range slots {
			strs[i] = slot.String()
		}
		slotsByDate[date] = strs
	}

	return &AvailabilityResponse{
		VenueID:     resp.VenueID,
		VenueName:   resp.VenueName,
		WindowDays:  resp.WindowDays,
		Dates:       resp.Dates,
		SlotsByDate: slotsByDate,
	}
}

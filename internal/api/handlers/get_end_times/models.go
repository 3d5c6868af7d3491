package get_end_times

import (
	"github.com/d4nchik/VH-BookingService/internal/domain"
	getEndTimes "github.com/d4nchik/VH-BookingService/internal/usecase/get_end_times"
)

// EndTimesResponse HTTP response model
type EndTimesResponse struct {
	VenueID   int64    `json:"venueId"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTimes  []string `json:"endTimes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getEndTimes.Response) *EndTimesResponse {
	endTimes := make([]string, len(resp.EndTimes))
	for i, t := range resp.EndTimes {
		endTimes[i] = t.String()
	}

	return &EndTimesResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTimes:  endTimes,
	}
}

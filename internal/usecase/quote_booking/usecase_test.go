package quote_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type stubVenueRepo struct {
	venue *domain.Venue
	err   error
}

func (s *stubVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.venue, nil
}

func testVenue() *domain.Venue {
	return &domain.Venue{
		ID:           1,
		Name:         "Лофт на Неве",
		PricePerHour: 1000,
		Services: []domain.ServiceOption{
			{ID: 10, VenueID: 1, Name: "Проектор", Price: 500},
			{ID: 11, VenueID: 1, Name: "Кейтеринг", Price: 3000},
		},
	}
}

func TestQuoteBooking_BaseOnly(t *testing.T) {
	uc := NewUseCase(&stubVenueRepo{venue: testVenue()}, nil, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:   1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	require.NoError(t, err)
	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, 3000.0, resp.BasePrice)
	assert.Equal(t, 3000.0, resp.TotalPrice)
	assert.Empty(t, resp.Services)
}

func TestQuoteBooking_WithServices(t *testing.T) {
	uc := NewUseCase(&stubVenueRepo{venue: testVenue()}, nil, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:    1,
		StartTime:  "09:00",
		EndTime:    "12:00",
		ServiceIDs: []int64{10, 11},
	})

	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.BasePrice)
	// Услуги с фиксированной ценой не зависят от длительности
	assert.Equal(t, 6500.0, resp.TotalPrice)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Проектор", resp.Services[0].Name)
}

func TestQuoteBooking_PartialHours(t *testing.T) {
	uc := NewUseCase(&stubVenueRepo{venue: testVenue()}, nil, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:   1,
		StartTime: "09:30",
		EndTime:   "11:30",
	})

	require.NoError(t, err)
	assert.Equal(t, 2000.0, resp.TotalPrice)
}

func TestQuoteBooking_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repo    *stubVenueRepo
		req     *Request
		wantErr error
	}{
		{
			name:    "площадка не найдена",
			repo:    &stubVenueRepo{err: venueRepo.ErrVenueNotFound},
			req:     &Request{VenueID: 42, StartTime: "09:00", EndTime: "12:00"},
			wantErr: ErrVenueNotFound,
		},
		{
			name:    "чужая услуга",
			repo:    &stubVenueRepo{venue: testVenue()},
			req:     &Request{VenueID: 1, StartTime: "09:00", EndTime: "12:00", ServiceIDs: []int64{999}},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "окончание не позже начала",
			repo:    &stubVenueRepo{venue: testVenue()},
			req:     &Request{VenueID: 1, StartTime: "12:00", EndTime: "12:00"},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "некорректное время",
			repo:    &stubVenueRepo{venue: testVenue()},
			req:     &Request{VenueID: 1, StartTime: "noon", EndTime: "13:00"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.repo, nil, noopLogger{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

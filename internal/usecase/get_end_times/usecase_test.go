package get_end_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type stubBookingRepo struct {
	bookings []*domain.Booking
}

func (s *stubBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
}

type stubVenueRepo struct {
	err error
}

func (s *stubVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Venue{ID: 1}, nil
}

func TestGetEndTimes_StopsAtNextBookingStart(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:          1,
		VenueID:     1,
		BookingDate: date,
		Status:      domain.StatusConfirmed,
		Timeslots: []domain.TimeInterval{
			{Start: "11:00", End: "13:00"},
		},
	}

	uc := NewUseCase(&stubBookingRepo{bookings: []*domain.Booking{booking}}, &stubVenueRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:   1,
		Date:      date,
		StartTime: "09:00",
	})

	require.NoError(t, err)
	// Окончание может совпадать с началом чужого бронирования, но не пересекать его
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, resp.EndTimes)
}

func TestGetEndTimes_NoBookings(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := NewUseCase(&stubBookingRepo{}, &stubVenueRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:   1,
		Date:      date,
		StartTime: "21:00",
	})

	require.NoError(t, err)
	// Все слоты сетки позже начала
	assert.Equal(t, []types.TimeString{"22:00", "23:00"}, resp.EndTimes)
}

func TestGetEndTimes_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubVenueRepo{err: venueRepo.ErrVenueNotFound}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		VenueID:   42,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestGetEndTimes_InvalidInput(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubVenueRepo{}, noopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой ID площадки", &Request{VenueID: 0, Date: time.Now(), StartTime: "09:00"}},
		{"нулевая дата", &Request{VenueID: 1, StartTime: "09:00"}},
		{"некорректное время", &Request{VenueID: 1, Date: time.Now(), StartTime: "9am"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

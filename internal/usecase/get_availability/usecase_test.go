package get_availability

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

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter domain.VenueBookingsFilter
}

func (s *stubBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, nil
}

type stubVenueRepo struct {
	venue *domain.Venue
	err   error
	calls int
}

func (s *stubVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.venue, nil
}

type stubVenueCache struct {
	venue *domain.Venue
	set   *domain.Venue
}

func (s *stubVenueCache) Get(_ context.Context, _ int64) (*domain.Venue, error) {
	if s.venue == nil {
		return nil, assert.AnError
	}
	return s.venue, nil
}

func (s *stubVenueCache) Set(_ context.Context, v *domain.Venue) error {
	s.set = v
	return nil
}

func TestGetAvailability_NoBookings(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bookingRepo := &stubBookingRepo{}
	uc := NewUseCase(bookingRepo, &stubVenueRepo{venue: &domain.Venue{ID: 1, Name: "Лофт"}}, nil, noopLogger{})
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VenueID)
	assert.Equal(t, "Лофт", resp.VenueName)
	// Без бронирований доступны все 90 дат окна
	assert.Len(t, resp.Dates, domain.AvailabilityWindowDays)
	assert.Equal(t, "2025-06-01", resp.Dates[0])
	assert.Equal(t, "2025-08-29", resp.Dates[len(resp.Dates)-1])
	assert.Len(t, resp.SlotsByDate["2025-06-01"], 24)

	// Читается весь диапазон окна, только активные бронирования
	require.NotNil(t, bookingRepo.lastFilter.StartDate)
	require.NotNil(t, bookingRepo.lastFilter.EndDate)
	assert.False(t, bookingRepo.lastFilter.IncludeInactive)
}

func TestGetAvailability_BookingBlocksBufferedSlots(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:          1,
		VenueID:     1,
		BookingDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
		Timeslots: []domain.TimeInterval{
			{Start: "14:00", End: "16:00"},
		},
	}

	uc := NewUseCase(
		&stubBookingRepo{bookings: []*domain.Booking{booking}},
		&stubVenueRepo{venue: &domain.Venue{ID: 1}},
		nil,
		noopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})

	require.NoError(t, err)
	slots := resp.SlotsByDate["2025-06-10"]
	// Заблокированы 13:00-16:00 (интервал плюс буфер с обеих сторон)
	assert.Len(t, slots, 20)
	for _, blocked := range []types.TimeString{"13:00", "14:00", "15:00", "16:00"} {
		assert.NotContains(t, slots, blocked)
	}
	assert.Contains(t, slots, types.TimeString("12:00"))
	assert.Contains(t, slots, types.TimeString("17:00"))
}

func TestGetAvailability_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubVenueRepo{err: venueRepo.ErrVenueNotFound}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 42})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestGetAvailability_InvalidVenueID(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubVenueRepo{}, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailability_CacheHitSkipsRepository(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &stubVenueRepo{}
	cache := &stubVenueCache{venue: &domain.Venue{ID: 1, Name: "Из кеша"}}

	uc := NewUseCase(&stubBookingRepo{}, repo, cache, noopLogger{})
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Из кеша", resp.VenueName)
	assert.Zero(t, repo.calls)
}

func TestGetAvailability_CacheMissFillsCache(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &stubVenueRepo{venue: &domain.Venue{ID: 1, Name: "Из БД"}}
	cache := &stubVenueCache{}

	uc := NewUseCase(&stubBookingRepo{}, repo, cache, noopLogger{})
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Из БД", resp.VenueName)
	require.NotNil(t, cache.set)
	assert.Equal(t, int64(1), cache.set.ID)
}

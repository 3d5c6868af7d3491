package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	bookingRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/booking"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/service/bookings/models"
	"github.com/d4nchik/VH-BookingService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type stubBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking
	getErr   error

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
	cancelErr       error

	lastFilter domain.VenueBookingsFilter
	lastStatus *domain.BookingStatus
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func (s *stubBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	s.lastStatus = status
	return s.bookings, nil
}

func (s *stubBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, nil
}

func (s *stubBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelledID = id
	s.cancelledStatus = status
	s.cancelledReason = reason
	return nil
}

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

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:      5,
		UserID:  100,
		VenueID: 1,
		Status:  domain.StatusConfirmed,
		Timeslots: []domain.TimeInterval{
			{Start: "10:00", End: "12:00"},
		},
		VenueName:  "Лофт на Неве",
		TotalPrice: 2000,
	}
}

func testVenueOwnedBy(ownerID int64) *domain.Venue {
	return &domain.Venue{ID: 1, OwnerID: ownerID, Name: "Лофт на Неве"}
}

func TestGetByID_OwnBooking(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{booking: testBooking()},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 5, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, resp.Timeslots, 1)
	assert.Equal(t, "10:00", resp.Timeslots[0].StartTime)
}

func TestGetByID_VenueOwnerHasAccess(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{booking: testBooking()},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 5, 200)

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.UserID)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{booking: testBooking()},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	_, err := svc.GetByID(context.Background(), 5, 300)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{getErr: bookingRepo.ErrBookingNotFound},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	_, err := svc.GetByID(context.Background(), 5, 100)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &stubBookingRepo{bookings: []*domain.Booking{testBooking()}}
	svc := NewService(repo, &stubVenueRepo{}, nil, noopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, &stubVenueRepo{}, nil, noopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetVenueBookings_OwnerOnly(t *testing.T) {
	repo := &stubBookingRepo{bookings: []*domain.Booking{testBooking()}}
	svc := NewService(repo, &stubVenueRepo{venue: testVenueOwnedBy(200)}, nil, noopLogger{})

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:          200,
		VenueID:         1,
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.True(t, repo.lastFilter.IncludeInactive)

	_, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  300,
		VenueID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetVenueBookings_VenueNotFound(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, &stubVenueRepo{err: venueRepo.ErrVenueNotFound}, nil, noopLogger{})

	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  200,
		VenueID: 1,
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCancel_ByUser(t *testing.T) {
	repo := &stubBookingRepo{booking: testBooking()}
	svc := NewService(repo, &stubVenueRepo{venue: testVenueOwnedBy(200)}, nil, noopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		UserID:             100,
		CancellationReason: "изменились планы",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
	assert.Equal(t, "изменились планы", repo.cancelledReason)
}

type stubVenueCache struct {
	invalidatedID int64
}

func (s *stubVenueCache) Invalidate(_ context.Context, venueID int64) error {
	s.invalidatedID = venueID
	return nil
}

func TestCancel_InvalidatesVenueCache(t *testing.T) {
	cache := &stubVenueCache{}
	svc := NewService(
		&stubBookingRepo{booking: testBooking()},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		cache,
		noopLogger{},
	)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 100})

	require.NoError(t, err)
	assert.Equal(t, int64(1), cache.invalidatedID)
}

func TestCancel_ByVendor(t *testing.T) {
	repo := &stubBookingRepo{booking: testBooking()}
	svc := NewService(repo, &stubVenueRepo{venue: testVenueOwnedBy(200)}, nil, noopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		UserID: 200,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByVendor, repo.cancelledStatus)
}

func TestCancel_AccessDenied(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{booking: testBooking()},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 300})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyFinished(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	svc := NewService(
		&stubBookingRepo{booking: booking},
		&stubVenueRepo{venue: testVenueOwnedBy(200)},
		nil,
		noopLogger{},
	)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 100})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

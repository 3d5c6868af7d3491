package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/integrations/paymentservice"
	"github.com/d4nchik/VH-BookingService/pkg/ptr"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
}

func (s *stubBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = 77
	created.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.created = &created
	return &created, nil
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

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPaymentClient struct {
	payment *paymentservice.Payment
	err     error
}

func (s *stubPaymentClient) InitiatePaymentWithGracefulDegradation(_ context.Context, _ paymentservice.InitiatePaymentRequest) (*paymentservice.Payment, error) {
	return s.payment, s.err
}

func testVenue() *domain.Venue {
	return &domain.Venue{
		ID:           1,
		OwnerID:      100,
		Name:         "Лофт на Неве",
		PricePerHour: 1000,
		Services: []domain.ServiceOption{
			{ID: 10, VenueID: 1, Name: "Проектор", Price: 500},
			{ID: 11, VenueID: 1, Name: "Кейтеринг", Price: 3000},
		},
	}
}

func newTestUseCase(bookingRepo *stubBookingRepo, venue *domain.Venue, payment *stubPaymentClient, now time.Time) *UseCase {
	uc := NewUseCase(
		bookingRepo,
		&stubVenueRepo{venue: venue},
		nil,
		payment,
		stubTxManager{},
		noopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestCreateBooking_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{}
	payment := &stubPaymentClient{payment: &paymentservice.Payment{
		PaymentRef: "ref",
		Status:     "pending",
		PaymentURL: "https://pay.example/ref",
	}}
	uc := newTestUseCase(repo, testVenue(), payment, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		VenueID:    1,
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "13:00",
		ServiceIDs: []int64{10},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	// 3 часа по 1000 + проектор 500
	assert.Equal(t, 3500.0, resp.TotalPrice)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
	require.NotNil(t, resp.PaymentURL)
	assert.Equal(t, "https://pay.example/ref", *resp.PaymentURL)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Лофт на Неве", repo.created.VenueName)
	require.NotNil(t, repo.created.PaymentRef)
}

func TestCreateBooking_StartTimeConflicts(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	existing := &domain.Booking{
		ID:          1,
		VenueID:     1,
		BookingDate: date,
		Status:      domain.StatusConfirmed,
		Timeslots: []domain.TimeInterval{
			{Start: "12:00", End: "14:00"},
		},
	}

	tests := []struct {
		name      string
		startTime types.TimeString
		endTime   types.TimeString
	}{
		{"внутри бронирования", "13:00", "15:00"},
		{"в буфере перед началом", "11:00", "12:00"},
		{"в буфере после окончания", "14:00", "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubBookingRepo{bookings: []*domain.Booking{existing}}
			uc := newTestUseCase(repo, testVenue(), &stubPaymentClient{}, now)

			_, err := uc.Execute(context.Background(), &Request{
				UserID:    5,
				VenueID:   1,
				Date:      date,
				StartTime: tt.startTime,
				EndTime:   tt.endTime,
			})

			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreateBooking_EndTimeCrossesBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	existing := &domain.Booking{
		ID:          1,
		VenueID:     1,
		BookingDate: date,
		Status:      domain.StatusConfirmed,
		Timeslots: []domain.TimeInterval{
			{Start: "13:00", End: "15:00"},
		},
	}

	repo := &stubBookingRepo{bookings: []*domain.Booking{existing}}
	uc := newTestUseCase(repo, testVenue(), &stubPaymentClient{}, now)

	// Интервал 10:00-14:00 пересекает бронирование с началом в 13:00
	_, err := uc.Execute(context.Background(), &Request{
		UserID:    5,
		VenueID:   1,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "14:00",
	})
	assert.ErrorIs(t, err, ErrEndTimeNotAvailable)

	// Окончание ровно в начале следующего бронирования допустимо
	payment := &stubPaymentClient{payment: &paymentservice.Payment{PaymentURL: "u"}}
	uc = newTestUseCase(repo, testVenue(), payment, now)
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    5,
		VenueID:   1,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.TotalPrice)
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name: "время вне сетки",
			req: &Request{
				UserID: 5, VenueID: 1, Date: date,
				StartTime: "10:30", EndTime: "12:30",
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "окончание раньше начала",
			req: &Request{
				UserID: 5, VenueID: 1, Date: date,
				StartTime: "12:00", EndTime: "10:00",
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "дата в прошлом",
			req: &Request{
				UserID: 5, VenueID: 1,
				Date:      time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", EndTime: "12:00",
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "дата за пределами окна",
			req: &Request{
				UserID: 5, VenueID: 1,
				Date:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", EndTime: "12:00",
			},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name: "дубликат услуги",
			req: &Request{
				UserID: 5, VenueID: 1, Date: date,
				StartTime: "10:00", EndTime: "12:00",
				ServiceIDs: []int64{10, 10},
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubBookingRepo{}, testVenue(), &stubPaymentClient{}, now)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBooking_UnknownService(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testVenue(), &stubPaymentClient{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		VenueID:    1,
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "12:00",
		ServiceIDs: []int64{999},
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateBooking_VenueNotFound(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&stubBookingRepo{},
		&stubVenueRepo{err: venueRepo.ErrVenueNotFound},
		nil,
		&stubPaymentClient{},
		stubTxManager{},
		noopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    5,
		VenueID:   1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCreateBooking_PaymentDegraded(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{}
	payment := &stubPaymentClient{err: paymentservice.ErrServiceDegraded}
	uc := newTestUseCase(repo, testVenue(), payment, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    5,
		VenueID:   1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
		Notes:     ptr.Ptr("день рождения"),
	})

	// Бронирование создано, ссылки на оплату нет
	require.NoError(t, err)
	assert.Nil(t, resp.PaymentURL)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	require.NotNil(t, repo.created)
}

func TestCreateBooking_PaymentRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	payment := &stubPaymentClient{err: paymentservice.ErrPaymentRejected}
	uc := newTestUseCase(&stubBookingRepo{}, testVenue(), payment, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    5,
		VenueID:   1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	assert.True(t, errors.Is(err, ErrPaymentRejected))
}

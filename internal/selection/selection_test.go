package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

var testVenue = &domain.Venue{
	ID:           7,
	Name:         "Grand Hall",
	City:         "Kathmandu",
	Capacity:     200,
	PricePerHour: 500,
	Services: []domain.ServiceOption{
		{ID: 1, VenueID: 7, Name: "Sound system", Price: 1500},
		{ID: 2, VenueID: 7, Name: "Catering", Price: 2500},
	},
}

func newTestMachine(t *testing.T, bookings []*domain.Booking) *Machine {
	t.Helper()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m, err := NewMachine(testVenue, bookings, availability.Options{WindowDays: 30, Now: now})
	require.NoError(t, err)
	return m
}

func confirmedBooking(date time.Time, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		VenueID:     7,
		BookingDate: date,
		Timeslots:   []domain.TimeInterval{{Start: start, End: end}},
		Status:      domain.StatusConfirmed,
	}
}

func TestMachine_HappyPath(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("10:00"))
	require.True(t, m.SelectEndTime("12:00"))
	require.True(t, m.ToggleService(1))

	assert.True(t, m.IsComplete())

	total, ok := m.TotalPrice()
	require.True(t, ok)
	assert.Equal(t, 2*500.0+1500, total)

	req, ok := m.BuildRequest()
	require.True(t, ok)
	assert.Equal(t, int64(7), req.VenueID)
	assert.Equal(t, "2025-06-10", req.Date)
	assert.Equal(t, types.TimeString("10:00"), req.StartTime)
	assert.Equal(t, types.TimeString("12:00"), req.EndTime)
	assert.Equal(t, []int64{1}, req.ServiceIDs)
	assert.Equal(t, 2500.0, req.TotalPrice)
}

func TestMachine_DateChangeResetsDownstream(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("10:00"))
	require.True(t, m.SelectEndTime("12:00"))

	// Смена даты сбрасывает начало и окончание
	require.True(t, m.SelectDate("2025-06-11"))
	state := m.State()
	assert.Equal(t, "2025-06-11", state.Date)
	assert.Empty(t, state.StartTime)
	assert.Empty(t, state.EndTime)
	assert.False(t, m.IsComplete())
}

func TestMachine_StartChangeResetsEnd(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("10:00"))
	require.True(t, m.SelectEndTime("12:00"))

	require.True(t, m.SelectStartTime("14:00"))
	state := m.State()
	assert.Equal(t, types.TimeString("14:00"), state.StartTime)
	assert.Empty(t, state.EndTime)
}

func TestMachine_RejectsOutOfDomainTransitions(t *testing.T) {
	bookingDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	m := newTestMachine(t, []*domain.Booking{
		confirmedBooking(bookingDate, "14:00", "16:00"),
	})

	// Дата вне окна
	assert.False(t, m.SelectDate("2030-01-01"))

	// Начало без выбранной даты
	assert.False(t, m.SelectStartTime("10:00"))

	require.True(t, m.SelectDate("2025-06-10"))

	// Занятый (буферизованный) слот отклоняется без изменения состояния
	assert.False(t, m.SelectStartTime("14:00"))
	assert.False(t, m.SelectStartTime("13:00"))
	assert.Empty(t, m.State().StartTime)

	// Окончание без выбранного начала
	assert.False(t, m.SelectEndTime("12:00"))

	require.True(t, m.SelectStartTime("10:00"))

	// Окончание, пересекающее чужое бронирование
	assert.False(t, m.SelectEndTime("15:00"))
	// Окончание не позже начала
	assert.False(t, m.SelectEndTime("10:00"))
	// Граница чужого бронирования допустима
	assert.True(t, m.SelectEndTime("14:00"))

	// Неизвестная услуга
	assert.False(t, m.ToggleService(99))
}

func TestMachine_ValidEndTimesFollowBookings(t *testing.T) {
	bookingDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	m := newTestMachine(t, []*domain.Booking{
		confirmedBooking(bookingDate, "11:00", "13:00"),
	})

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("09:00"))

	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, m.ValidEndTimes())
}

func TestMachine_ToggleServiceTwiceRemoves(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.ToggleService(2))
	require.Len(t, m.SelectedServices(), 1)

	require.True(t, m.ToggleService(2))
	assert.Empty(t, m.SelectedServices())
}

func TestMachine_BuildRequestRequiresCompleteSelection(t *testing.T) {
	m := newTestMachine(t, nil)

	_, ok := m.BuildRequest()
	assert.False(t, ok)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("10:00"))
	_, ok = m.BuildRequest()
	assert.False(t, ok)
}

func TestMachine_RefreshDiscardsStaleSelection(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("14:00"))
	require.True(t, m.SelectEndTime("16:00"))

	// Другой пользователь успел занять выбранный слот - индекс
	// пересчитывается целиком, устаревший выбор сбрасывается
	bookingDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Refresh([]*domain.Booking{
		confirmedBooking(bookingDate, "14:00", "16:00"),
	}))

	state := m.State()
	assert.Equal(t, "2025-06-10", state.Date)
	assert.Empty(t, state.StartTime)
	assert.Empty(t, state.EndTime)
	assert.False(t, m.IsComplete())
}

func TestMachine_RefreshKeepsValidSelection(t *testing.T) {
	m := newTestMachine(t, nil)

	require.True(t, m.SelectDate("2025-06-10"))
	require.True(t, m.SelectStartTime("08:00"))
	require.True(t, m.SelectEndTime("10:00"))

	bookingDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Refresh([]*domain.Booking{
		confirmedBooking(bookingDate, "18:00", "20:00"),
	}))

	state := m.State()
	assert.Equal(t, types.TimeString("08:00"), state.StartTime)
	assert.Equal(t, types.TimeString("10:00"), state.EndTime)
	assert.True(t, m.IsComplete())
}

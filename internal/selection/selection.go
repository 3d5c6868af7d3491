package selection

import (
	"sort"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Machine пошаговый выбор бронирования: дата -> начало -> окончание -> услуги
//
// Единственный компонент с состоянием: хранит текущий выбор пользователя и
// производный индекс доступности. Переходы с недопустимым значением отклоняются
// (возврат false) без изменения состояния - вызывающая сторона обязана проверять
// результат, а не полагаться на панику или ошибку
//
// При смене даты сбрасываются начало и окончание, при смене начала - окончание.
// Окончание принимается только из текущего списка допустимых окончаний
type Machine struct {
	venue *domain.Venue
	opts  availability.Options

	index           *availability.Index
	intervalsByDate map[string][]domain.TimeInterval
	grid            []types.TimeString

	date      string
	startTime types.TimeString
	endTime   types.TimeString
	services  map[int64]bool
}

// NewMachine создает машину выбора для площадки по снимку её бронирований
// Снимок считается неизменным на время сессии выбора
func NewMachine(venue *domain.Venue, bookings []*domain.Booking, opts availability.Options) (*Machine, error) {
	index, err := availability.Compute(bookings, opts)
	if err != nil {
		return nil, err
	}

	return &Machine{
		venue:           venue,
		opts:            opts,
		index:           index,
		intervalsByDate: availability.ActiveIntervalsByDate(bookings),
		grid:            availability.DaySlots(opts.GranularityMinutes),
		services:        make(map[int64]bool),
	}, nil
}

// Refresh целиком заменяет снимок бронирований и пересчитывает доступность
// Частичное обновление индекса не поддерживается: устаревший индекс опаснее
// лишнего пересчета. Выбор, ставший недопустимым на свежих данных, сбрасывается
func (m *Machine) Refresh(bookings []*domain.Booking) error {
	index, err := availability.Compute(bookings, m.opts)
	if err != nil {
		return err
	}

	m.index = index
	m.intervalsByDate = availability.ActiveIntervalsByDate(bookings)

	if m.date == "" {
		return nil
	}
	if !m.index.IsDateAvailable(m.date) {
		m.date = ""
		m.startTime = ""
		m.endTime = ""
		return nil
	}
	if m.startTime != "" && !m.index.HasSlot(m.date, m.startTime) {
		m.startTime = ""
		m.endTime = ""
		return nil
	}
	if m.endTime != "" && !m.isValidEndTime(m.endTime) {
		m.endTime = ""
	}
	return nil
}

// AvailableDates возвращает даты окна, имеющие хотя бы один свободный слот
func (m *Machine) AvailableDates() []string {
	return m.index.Dates
}

// SlotsForDate возвращает свободные слоты начала на указанной дате
func (m *Machine) SlotsForDate(date string) []types.TimeString {
	return m.index.SlotsByDate[date]
}

// SelectDate выбирает дату бронирования
// Допустимы только даты из списка доступных; начало и окончание сбрасываются
func (m *Machine) SelectDate(date string) bool {
	if !m.index.IsDateAvailable(date) {
		return false
	}
	m.date = date
	m.startTime = ""
	m.endTime = ""
	return true
}

// SelectStartTime выбирает время начала
// Требует выбранной даты; допустимы только свободные слоты этой даты; окончание сбрасывается
func (m *Machine) SelectStartTime(t types.TimeString) bool {
	if m.date == "" {
		return false
	}
	if !m.index.HasSlot(m.date, t) {
		return false
	}
	m.startTime = t
	m.endTime = ""
	return true
}

// SelectEndTime выбирает время окончания
// Требует выбранного начала; допустимы только значения из ValidEndTimes
func (m *Machine) SelectEndTime(t types.TimeString) bool {
	if m.startTime == "" {
		return false
	}
	if !m.isValidEndTime(t) {
		return false
	}
	m.endTime = t
	return true
}

// ToggleService добавляет или убирает услугу из выбора
// Не зависит от выбора даты и времени; неизвестные услуги отклоняются
func (m *Machine) ToggleService(serviceID int64) bool {
	if _, ok := m.venue.ServiceByID(serviceID); !ok {
		return false
	}
	if m.services[serviceID] {
		delete(m.services, serviceID)
	} else {
		m.services[serviceID] = true
	}
	return true
}

// ValidEndTimes возвращает допустимые окончания для текущих даты и начала
// Пустой список, если начало не выбрано
func (m *Machine) ValidEndTimes() []types.TimeString {
	if m.startTime == "" {
		return []types.TimeString{}
	}
	endTimes, err := availability.ValidEndTimes(m.grid, m.startTime, m.intervalsByDate[m.date])
	if err != nil {
		return []types.TimeString{}
	}
	return endTimes
}

// SelectedServices возвращает выбранные услуги в порядке возрастания ID
func (m *Machine) SelectedServices() []domain.ServiceOption {
	ids := make([]int64, 0, len(m.services))
	for id := range m.services {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	selected := make([]domain.ServiceOption, 0, len(ids))
	for _, id := range ids {
		if service, ok := m.venue.ServiceByID(id); ok {
			selected = append(selected, service)
		}
	}
	return selected
}

// IsComplete возвращает true, когда выбраны дата, начало и окончание
// Услуги опциональны
func (m *Machine) IsComplete() bool {
	return m.date != "" && m.startTime != "" && m.endTime != ""
}

// TotalPrice считает полную стоимость текущего выбора
// Определена только для завершенного выбора
func (m *Machine) TotalPrice() (float64, bool) {
	if !m.IsComplete() {
		return 0, false
	}
	total, err := availability.TotalPrice(m.startTime, m.endTime, m.venue.PricePerHour, m.SelectedServices())
	if err != nil {
		return 0, false
	}
	return total, true
}

// State возвращает текущее состояние выбора
func (m *Machine) State() State {
	return State{
		Date:      m.date,
		StartTime: m.startTime,
		EndTime:   m.endTime,
	}
}

// BuildRequest формирует финальный запрос на бронирование
// Возвращает false, пока выбор не завершен
func (m *Machine) BuildRequest() (*BookingRequest, bool) {
	if !m.IsComplete() {
		return nil, false
	}

	services := m.SelectedServices()
	serviceIDs := make([]int64, len(services))
	for i, s := range services {
		serviceIDs[i] = s.ID
	}

	total, ok := m.TotalPrice()
	if !ok {
		return nil, false
	}

	return &BookingRequest{
		VenueID:    m.venue.ID,
		Date:       m.date,
		StartTime:  m.startTime,
		EndTime:    m.endTime,
		ServiceIDs: serviceIDs,
		TotalPrice: total,
	}, true
}

func (m *Machine) isValidEndTime(t types.TimeString) bool {
	for _, candidate := range m.ValidEndTimes() {
		if candidate == t {
			return true
		}
	}
	return false
}

// State снимок текущего выбора (без услуг)
type State struct {
	Date      string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BookingRequest финальный платеж-готовый запрос, передаваемый пайплайну бронирования
type BookingRequest struct {
	VenueID    int64
	Date       string
	StartTime  types.TimeString
	EndTime    types.TimeString
	ServiceIDs []int64
	TotalPrice float64
}

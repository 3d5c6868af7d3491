package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/dbmetrics"
	"github.com/d4nchik/VH-BookingService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы bookings для выборок
var bookingColumns = []string{
	"id",
	"user_id",
	"venue_id",
	"booking_date",
	"status",
	"venue_name",
	"total_price",
	"notes",
	"payment_ref",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
// Занятые интервалы хранятся в дочерней таблице booking_timeslots,
// выбранные услуги (денормализованные) - в booking_services
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе с интервалами и услугами
// Если в контексте передана активная транзакция (через context.Value), использует её -
// создание с проверкой доступности слотов обязано выполняться в транзакции,
// иначе возможна гонка с параллельным бронированием тех же интервалов
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"venue_id",
			"booking_date",
			"status",
			"venue_name",
			"total_price",
			"notes",
			"payment_ref",
		).
		Values(
			booking.UserID,
			booking.VenueID,
			booking.BookingDate,
			booking.Status,
			booking.VenueName,
			booking.TotalPrice,
			booking.Notes,
			booking.PaymentRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertTimeslots(ctx, executor, booking.ID, booking.Timeslots); err != nil {
		return nil, err
	}
	if err := r.insertServices(ctx, executor, booking.ID, booking.Services); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Repository) insertTimeslots(ctx context.Context, executor DBExecutor, bookingID int64, timeslots []domain.TimeInterval) error {
	if len(timeslots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_timeslots").
		Columns("booking_id", "start_time", "end_time")
	for _, slot := range timeslots {
		insertBuilder = insertBuilder.Values(bookingID, slot.Start, slot.End)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertTimeslots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertTimeslots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, bookingID int64, services []domain.BookedService) error {
	if len(services) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id", "name", "price")
	for _, service := range services {
		insertBuilder = insertBuilder.Values(bookingID, service.ServiceID, service.Name, service.Price)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с интервалами и услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachDetails(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу; сортировка - сначала новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachDetails(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду (StartDate, EndDate), статусу
// и включению неактивных бронирований (IncludeInactive)
//
// Внутри транзакции при запросе на конкретную дату добавляется FOR UPDATE -
// этим пользуется usecase создания бронирования для защиты от гонки
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachDetails(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/psqlbuilder"
)

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VenueID,
		&booking.BookingDate,
		&booking.Status,
		&booking.VenueName,
		&booking.TotalPrice,
		&booking.Notes,
		&booking.PaymentRef,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// attachDetails дозагружает интервалы и услуги для списка бронирований
func (r *Repository) attachDetails(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, len(bookings))
	for i, booking := range bookings {
		byID[booking.ID] = booking
		ids[i] = booking.ID
	}

	if err := r.attachTimeslots(ctx, executor, byID, ids); err != nil {
		return err
	}
	return r.attachServices(ctx, executor, byID, ids)
}

func (r *Repository) attachTimeslots(ctx context.Context, executor DBExecutor, byID map[int64]*domain.Booking, ids []int64) error {
	query, args, err := psqlbuilder.Select("booking_id", "start_time", "end_time").
		From("booking_timeslots").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC, start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachTimeslots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachTimeslots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var interval domain.TimeInterval
		if err := rows.Scan(&bookingID, &interval.Start, &interval.End); err != nil {
			return fmt.Errorf("%w: attachTimeslots - scan timeslot: %v", ErrScanRow, err)
		}
		if booking, ok := byID[bookingID]; ok {
			booking.Timeslots = append(booking.Timeslots, interval)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachTimeslots - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, byID map[int64]*domain.Booking, ids []int64) error {
	query, args, err := psqlbuilder.Select("booking_id", "service_id", "name", "price").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC, service_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var service domain.BookedService
		if err := rows.Scan(&bookingID, &service.ServiceID, &service.Name, &service.Price); err != nil {
			return fmt.Errorf("%w: attachServices - scan service: %v", ErrScanRow, err)
		}
		if booking, ok := byID[bookingID]; ok {
			booking.Services = append(booking.Services, service)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/dbmetrics"
	"github.com/d4nchik/VH-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var venueColumns = []string{
	"id",
	"owner_id",
	"name",
	"city",
	"address",
	"description",
	"capacity",
	"price_per_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками
// Дополнительные услуги площадки хранятся в таблице venue_services
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID вместе с её услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, []*domain.Venue{venue}); err != nil {
		return nil, err
	}

	return venue, nil
}

// List получает площадки каталога с фильтрацией
// Поддерживает фильтры по городу, минимальной вместимости и максимальной цене
// Префиксный поиск (filter.Query) выполняется сервисом через поисковый индекс,
// репозиторий его не обрабатывает
func (r *Repository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(venueColumns...).
		From("venues").
		OrderBy("id ASC")

	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *filter.City})
	}
	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}
	if filter.MaxPricePerHour != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_per_hour": *filter.MaxPricePerHour})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues, err := scanVenues(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, venues); err != nil {
		return nil, err
	}

	return venues, nil
}

// GetByIDs получает площадки по списку ID (для выдачи поискового индекса)
// Порядок результата - по возрастанию ID; отсутствующие ID пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error) {
	if len(ids) == 0 {
		return []*domain.Venue{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues, err := scanVenues(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, venues); err != nil {
		return nil, err
	}

	return venues, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&venue.ID,
		&venue.OwnerID,
		&venue.Name,
		&venue.City,
		&venue.Address,
		&venue.Description,
		&venue.Capacity,
		&venue.PricePerHour,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan venue: %v", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

func scanVenues(rows *sql.Rows) ([]*domain.Venue, error) {
	venues := make([]*domain.Venue, 0)

	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// attachServices дозагружает услуги для списка площадок
func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, venues []*domain.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Venue, len(venues))
	ids := make([]int64, len(venues))
	for i, venue := range venues {
		byID[venue.ID] = venue
		ids[i] = venue.ID
	}

	query, args, err := psqlbuilder.Select("id", "venue_id", "name", "price").
		From("venue_services").
		Where(squirrel.Eq{"venue_id": ids}).
		OrderBy("venue_id ASC, id ASC").
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
		var service domain.ServiceOption
		if err := rows.Scan(&service.ID, &service.VenueID, &service.Name, &service.Price); err != nil {
			return fmt.Errorf("%w: attachServices - scan service: %v", ErrScanRow, err)
		}
		if venue, ok := byID[service.VenueID]; ok {
			venue.Services = append(venue.Services, service)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

package venues

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/search"
	"github.com/d4nchik/VH-BookingService/internal/service/venues/models"
)

// Service сервис каталога площадок
//
// Префиксный поиск выполняется по неизменяемому индексу, который
// перестраивается целиком и подменяется атомарно под мьютексом.
// Запросы чтения никогда не видят частично обновленный индекс
type Service struct {
	venueRepo  VenueRepository
	venueCache VenueCache
	logger     Logger

	mu    sync.RWMutex
	index *search.Index
}

// NewService создает новый экземпляр сервиса каталога
func NewService(venueRepo VenueRepository, venueCache VenueCache, logger Logger) *Service {
	return &Service{
		venueRepo:  venueRepo,
		venueCache: venueCache,
		logger:     logger,
		index:      search.Build(nil),
	}
}

// RebuildIndex перестраивает поисковый индекс по всем площадкам
// Вызывается при старте сервиса и периодически по тикеру
func (s *Service) RebuildIndex(ctx context.Context) error {
	venues, err := s.venueRepo.List(ctx, domain.VenueFilter{})
	if err != nil {
		s.logger.Error("RebuildIndex: failed to list venues: %v", err)
		return fmt.Errorf("%w: RebuildIndex - repository error: %v", ErrInternal, err)
	}

	index := search.Build(venues)

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()

	s.logger.Info("RebuildIndex: index rebuilt, %d entries", index.Size())
	return nil
}

// List возвращает каталог площадок с фильтрацией
// При наличии поискового запроса кандидаты берутся из префиксного индекса,
// остальные фильтры применяются к результату
func (s *Service) List(ctx context.Context, req *models.ListVenuesRequest) (*models.VenueListResponse, error) {
	if req.Query != nil && len(*req.Query) > domain.MaxSearchQueryLength {
		s.logger.Warn("List: search query too long (%d characters)", len(*req.Query))
		return nil, fmt.Errorf("%w: query must be at most %d characters", ErrInvalidInput, domain.MaxSearchQueryLength)
	}

	if req.Query == nil || *req.Query == "" {
		filter := req.ToDomainFilter()
		filter.Query = nil

		venues, err := s.venueRepo.List(ctx, filter)
		if err != nil {
			s.logger.Error("List: repository error: %v", err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}

		return models.FromDomainVenueList(venues), nil
	}

	s.mu.RLock()
	ids := s.index.Lookup(*req.Query)
	s.mu.RUnlock()

	if len(ids) == 0 {
		return &models.VenueListResponse{Venues: []models.VenueResponse{}}, nil
	}

	venues, err := s.venueRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("List: failed to fetch venues by ids: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	filtered := applyFilter(venues, req)

	s.logger.Info("List: query=%q matched %d venues", *req.Query, len(filtered))
	return models.FromDomainVenueList(filtered), nil
}

// GetByID получает площадку по ID, используя кеш статических снимков
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if s.venueCache != nil {
		venue, err := s.venueCache.Get(ctx, id)
		if err == nil {
			return models.FromDomainVenue(venue), nil
		}
	}

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if s.venueCache != nil {
		if err := s.venueCache.Set(ctx, venue); err != nil {
			s.logger.Warn("GetByID: failed to cache venue id=%d: %v", id, err)
		}
	}

	return models.FromDomainVenue(venue), nil
}

// applyFilter применяет фильтры каталога к найденным по индексу площадкам
func applyFilter(venues []*domain.Venue, req *models.ListVenuesRequest) []*domain.Venue {
	filtered := make([]*domain.Venue, 0, len(venues))
	for _, v := range venues {
		if req.City != nil && v.City != *req.City {
			continue
		}
		if req.MinCapacity != nil && v.Capacity < *req.MinCapacity {
			continue
		}
		if req.MaxPricePerHour != nil && v.PricePerHour > *req.MaxPricePerHour {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

package venuecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// venueKeyFormat ключ снимка площадки в Redis
const venueKeyFormat = "venue_profile_v1:%d"

var (
	// ErrCacheMiss возвращается, когда снимка площадки нет в кеше
	ErrCacheMiss = errors.New("venuecache: cache miss")

	// ErrInternal возвращается при ошибках Redis или сериализации
	ErrInternal = errors.New("venuecache: internal error")
)

// Cache кеш статических профилей площадок поверх Redis
//
// Кешируется ТОЛЬКО профиль площадки (название, цена, услуги) - никогда
// производная доступность: её рассчет всегда идет от свежего чтения
// бронирований, иначе возможен показ занятого слота как свободного.
// При любой мутации бронирований площадки снимок удаляется целиком
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш поверх подключения к Redis
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает снимок профиля площадки из кеша
func (c *Cache) Get(ctx context.Context, venueID int64) (*domain.Venue, error) {
	key := fmt.Sprintf(venueKeyFormat, venueID)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrInternal, key, err)
	}

	var venue domain.Venue
	if err := json.Unmarshal([]byte(data), &venue); err != nil {
		return nil, fmt.Errorf("%w: unmarshal venue %d: %v", ErrInternal, venueID, err)
	}

	return &venue, nil
}

// Set сохраняет снимок профиля площадки с TTL
func (c *Cache) Set(ctx context.Context, venue *domain.Venue) error {
	key := fmt.Sprintf(venueKeyFormat, venue.ID)

	data, err := json.Marshal(venue)
	if err != nil {
		return fmt.Errorf("%w: marshal venue %d: %v", ErrInternal, venue.ID, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrInternal, key, err)
	}

	return nil
}

// Invalidate удаляет снимок площадки из кеша
// Частичное обновление не поддерживается - только полное вытеснение
func (c *Cache) Invalidate(ctx context.Context, venueID int64) error {
	key := fmt.Sprintf(venueKeyFormat, venueID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrInternal, key, err)
	}

	return nil
}

package redis_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "listing:"

// ListingCache - read-through кэш карточек объявлений в Redis
type ListingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewClient создает клиента и проверяет соединение
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewListingCache(client redis.Cmdable, ttl time.Duration) (*ListingCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ListingCache{client: client, ttl: ttl}, nil
}

func cacheKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Get возвращает (nil, nil) при промахе
func (c *ListingCache) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listing from cache: %w", err)
	}

	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		// битую запись просто выбрасываем
		contextkeys.LoggerFromContext(ctx).Warn("Corrupted cache entry dropped", port.Fields{
			"component":  "ListingCache",
			"listing_id": id.String(),
		})
		_ = c.client.Del(ctx, cacheKey(id)).Err()
		return nil, nil
	}
	return &listing, nil
}

func (c *ListingCache) Set(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	return c.client.Set(ctx, cacheKey(listing.ID), data, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(id)).Err()
}

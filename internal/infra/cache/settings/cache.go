// Package settings кэширует конфигурацию салона в redis (read-through).
// Ошибки redis не прерывают запрос: чтение уходит в хранилище.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const defaultKey = "salon:business_config"

// Client подмножество команд redis, используемых кэшем
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store источник конфигурации за кэшем
type Store interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
	Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Repository struct {
	store  Store
	client Client
	ttl    time.Duration
	key    string
	logger Logger
}

func NewRepository(store Store, client Client, ttl time.Duration, logger Logger) *Repository {
	return &Repository{
		store:  store,
		client: client,
		ttl:    ttl,
		key:    defaultKey,
		logger: logger,
	}
}

func (r *Repository) Get(ctx context.Context) (*domain.BusinessConfig, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	switch {
	case err == nil:
		var cfg domain.BusinessConfig
		jsonErr := json.Unmarshal(data, &cfg)
		if jsonErr == nil {
			return &cfg, nil
		}
		r.logger.Warn("settings cache: Get - decode cached config: %v", jsonErr)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("settings cache: Get - redis get: %v", err)
	}

	cfg, err := r.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(cfg); err == nil {
		if err := r.client.Set(ctx, r.key, encoded, r.ttl).Err(); err != nil {
			r.logger.Warn("settings cache: Get - redis set: %v", err)
		}
	}

	return cfg, nil
}

// Save пишет в хранилище и сбрасывает кэш
func (r *Repository) Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	saved, err := r.store.Save(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.Warn("settings cache: Save - redis del: %v", err)
	}

	return saved, nil
}

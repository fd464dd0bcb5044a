// Package cache wraps a storage backend with a Redis read-through layer for
// the two hottest lists, deals and activities. Every activity mutation
// invalidates the activity snapshot so hierarchy traversals never see a stale
// forest.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

const (
	dealsKey      = "dealdash:deals"
	activitiesKey = "dealdash:activities"
)

// Storage decorates another storage.Storage. Reads it does not override pass
// straight through the embedded backend.
type Storage struct {
	storage.Storage

	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis and wraps next. A dead Redis fails here, at startup.
func New(redisURL string, ttl time.Duration, next storage.Storage, logger *zap.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Storage{Storage: next, rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Close releases the Redis connection. The wrapped backend is closed by its
// own owner.
func (s *Storage) Close() error {
	return s.rdb.Close()
}

func fetchThrough[T any](ctx context.Context, s *Storage, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached []T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		// Redis trouble degrades to the backend instead of failing the read.
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	records, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(records); err == nil {
		if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return records, nil
}

func (s *Storage) invalidate(ctx context.Context, keys ...string) {
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *Storage) Deals(ctx context.Context) ([]crm.Deal, error) {
	return fetchThrough(ctx, s, dealsKey, s.Storage.Deals)
}

func (s *Storage) CreateDeal(ctx context.Context, in crm.DealCreate) (*crm.Deal, error) {
	d, err := s.Storage.CreateDeal(ctx, in)
	if err == nil {
		s.invalidate(ctx, dealsKey)
	}
	return d, err
}

func (s *Storage) UpdateDeal(ctx context.Context, id string, in crm.DealUpdate) (*crm.Deal, error) {
	d, err := s.Storage.UpdateDeal(ctx, id, in)
	if err == nil {
		s.invalidate(ctx, dealsKey)
	}
	return d, err
}

func (s *Storage) DeleteDeal(ctx context.Context, id string) error {
	err := s.Storage.DeleteDeal(ctx, id)
	if err == nil {
		// Cascade may have removed activities too.
		s.invalidate(ctx, dealsKey, activitiesKey)
	}
	return err
}

func (s *Storage) UpdateDealNotes(ctx context.Context, id, notes string) (*crm.Deal, error) {
	d, err := s.Storage.UpdateDealNotes(ctx, id, notes)
	if err == nil {
		s.invalidate(ctx, dealsKey)
	}
	return d, err
}

func (s *Storage) Activities(ctx context.Context) ([]crm.Activity, error) {
	return fetchThrough(ctx, s, activitiesKey, s.Storage.Activities)
}

func (s *Storage) CreateActivity(ctx context.Context, in crm.ActivityCreate) (*crm.Activity, error) {
	a, err := s.Storage.CreateActivity(ctx, in)
	if err == nil {
		s.invalidate(ctx, activitiesKey)
	}
	return a, err
}

func (s *Storage) UpdateActivity(ctx context.Context, id string, in crm.ActivityUpdate) (*crm.Activity, error) {
	a, err := s.Storage.UpdateActivity(ctx, id, in)
	if err == nil {
		s.invalidate(ctx, activitiesKey)
	}
	return a, err
}

func (s *Storage) DeleteActivity(ctx context.Context, id string) error {
	err := s.Storage.DeleteActivity(ctx, id)
	if err == nil {
		s.invalidate(ctx, activitiesKey)
	}
	return err
}

// Package redis stores recent searches in Redis.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-search/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates and verifies a Redis client connection.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Store keeps recent searches as a sorted set of city ids scored by search
// time (Unix milliseconds), plus a hash from city id to city name. Only the
// newest limit cities are kept.
type Store struct {
	rdb      *goredis.Client
	key      string
	namesKey string
	limit    int
	logger   *slog.Logger
}

// NewStore creates a Store under key holding at most limit cities.
func NewStore(rdb *goredis.Client, key string, limit int, logger *slog.Logger) *Store {
	if limit <= 0 {
		limit = 1
	}
	return &Store{
		rdb:      rdb,
		key:      key,
		namesKey: key + ":names",
		limit:    limit,
		logger:   logger,
	}
}

func (s *Store) Name() string { return "redis" }

// Record upserts rs and trims the oldest cities beyond the limit.
func (s *Store) Record(ctx context.Context, rs domain.RecentSearch) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZAdd(ctx, s.key, goredis.Z{Score: score(rs.SearchedAt), Member: rs.ID})
		pipe.HSet(ctx, s.namesKey, rs.ID, rs.CityName)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record recent search: %w", err)
	}

	stale, err := s.rdb.ZRange(ctx, s.key, 0, int64(-s.limit-1)).Result()
	if err != nil {
		return fmt.Errorf("list stale recent searches: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	members := make([]any, len(stale))
	for i, id := range stale {
		members[i] = id
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRem(ctx, s.key, members...)
		pipe.HDel(ctx, s.namesKey, stale...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("trim recent searches: %w", err)
	}
	s.logger.Debug("recent searches trimmed", "removed", len(stale))
	return nil
}

// List returns up to limit searches, most recent first. A non-positive limit
// returns everything stored.
func (s *Store) List(ctx context.Context, limit int) ([]domain.RecentSearch, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent searches: %w", err)
	}
	if len(zs) == 0 {
		return []domain.RecentSearch{}, nil
	}

	ids := make([]string, len(zs))
	for i, z := range zs {
		ids[i] = fmt.Sprint(z.Member)
	}
	names, err := s.rdb.HMGet(ctx, s.namesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load recent search names: %w", err)
	}
	return toRecentSearches(zs, names), nil
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// toRecentSearches joins sorted set entries with their names. Entries whose
// name is missing are skipped.
func toRecentSearches(zs []goredis.Z, names []any) []domain.RecentSearch {
	out := make([]domain.RecentSearch, 0, len(zs))
	for i, z := range zs {
		if i >= len(names) {
			break
		}
		name, ok := names[i].(string)
		if !ok {
			continue
		}
		out = append(out, domain.RecentSearch{
			ID:         fmt.Sprint(z.Member),
			CityName:   name,
			SearchedAt: time.UnixMilli(int64(z.Score)).UTC(),
		})
	}
	return out
}

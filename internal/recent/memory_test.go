package recent

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)

func searchAt(id, name string, minute int) domain.RecentSearch {
	return domain.RecentSearch{ID: id, CityName: name, SearchedAt: base.Add(time.Duration(minute) * time.Minute)}
}

func names(t *testing.T, s *MemoryStore, limit int) []string {
	t.Helper()
	list, err := s.List(context.Background(), limit)
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, rs := range list {
		out[i] = rs.CityName
	}
	return out
}

func TestMemoryStore_MostRecentFirst(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 0)))
	require.NoError(t, s.Record(ctx, searchAt("2", "Melbourne", 1)))
	require.NoError(t, s.Record(ctx, searchAt("3", "Perth", 2)))

	assert.Equal(t, []string{"Perth", "Melbourne", "Sydney"}, names(t, s, 0))
	assert.Equal(t, []string{"Perth", "Melbourne"}, names(t, s, 2))
	assert.Equal(t, []string{"Perth", "Melbourne", "Sydney"}, names(t, s, 99))
}

func TestMemoryStore_Eviction(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 0)))
	require.NoError(t, s.Record(ctx, searchAt("2", "Melbourne", 1)))
	require.NoError(t, s.Record(ctx, searchAt("3", "Perth", 2))) // evicts Sydney

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Perth", "Melbourne"}, names(t, s, 0))
}

func TestMemoryStore_RepeatPromotesCity(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 0)))
	require.NoError(t, s.Record(ctx, searchAt("2", "Melbourne", 1)))
	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 2)))

	// Melbourne is now the oldest and is the one evicted.
	require.NoError(t, s.Record(ctx, searchAt("3", "Perth", 3)))

	assert.Equal(t, []string{"Perth", "Sydney"}, names(t, s, 0))
}

func TestMemoryStore_RepeatUpdatesTimestamp(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 0)))
	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 5)))

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, base.Add(5*time.Minute), list[0].SearchedAt)
}

func TestMemoryStore_Empty(t *testing.T) {
	s := NewMemoryStore(0)

	list, err := s.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "memory", s.Name())
}

func TestMemoryStore_EvictedCityCanReturn(t *testing.T) {
	s := NewMemoryStore(1)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 0)))
	require.NoError(t, s.Record(ctx, searchAt("2", "Melbourne", 1)))
	require.NoError(t, s.Record(ctx, searchAt("1", "Sydney", 2)))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"Sydney"}, names(t, s, 0))
}

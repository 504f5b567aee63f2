package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	now = now.Add(2 * time.Minute)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	s.purge()
	assert.Empty(t, s.items)
}

func TestMemoryStore_SetNX(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	stored, err := s.SetNX(ctx, "idem", "pending", time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = s.SetNX(ctx, "idem", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	v, _, _ := s.Get(ctx, "idem")
	assert.Equal(t, "pending", v)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Type: "memory"}}
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &MemoryStore{}, s)

	cfg.Cache.Type = "memcached"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := &config.Config{Redis: config.RedisConfig{Host: "127.0.0.1", Port: "1"}}
	_, err := NewRedisStore(ctx, cfg)
	assert.Error(t, err)
}

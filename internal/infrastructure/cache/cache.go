package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Store is a string key-value store with per-key expiration
type Store interface {
	// Get returns the value and whether it was found
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the backend selected by cfg.Cache.Type
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Cache.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		s, err := NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Cache.Type)
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, int64(500*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Pipeline.MaxConcurrency)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "minio")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "minio", cfg.Storage.Type)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := FromEnv()
		require.NoError(t, err)
		return cfg
	}

	t.Run("unknown storage", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Type = "s3"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown cache", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Type = "memcached"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires api keys", func(t *testing.T) {
		cfg := base()
		cfg.Server.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Assembly.APIKey = "a"
		cfg.Groq.APIKey = "g"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non positive concurrency", func(t *testing.T) {
		cfg := base()
		cfg.Pipeline.MaxConcurrency = 0
		assert.Error(t, cfg.Validate())
	})
}

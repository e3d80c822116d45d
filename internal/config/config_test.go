package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DOCSTORE_DRIVER", "SESSION_TTL", "REDIS_ADDR", "RABBITMQ_URL", "PUBLIC_BASE_URL", "CORS_ALLOW_ORIGINS", "RUN_MIGRATIONS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongo", cfg.DocstoreDriver)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DOCSTORE_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DocstoreDriver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowOrigins)
}

func TestSplitCSV_EmptyFallsBackToWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitCSV(" , "))
}

func TestValidate_DevJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Setenv("DOCSTORE_DRIVER", "mongo")
	cfg := Load()
	assert.True(t, cfg.UsesDevJWTSecret())
	require.ErrorIs(t, cfg.Validate(), ErrDevJWTSecret)

	t.Setenv("DOCSTORE_DRIVER", "postgres")
	require.ErrorIs(t, Load().Validate(), ErrDevJWTSecret)

	t.Setenv("DOCSTORE_DRIVER", "memory")
	require.NoError(t, Load().Validate())

	t.Setenv("DOCSTORE_DRIVER", "mongo")
	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg = Load()
	assert.False(t, cfg.UsesDevJWTSecret())
	require.NoError(t, cfg.Validate())
}

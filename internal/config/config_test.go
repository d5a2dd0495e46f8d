package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_DatabaseURLOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/threads")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/threads", cfg.DatabaseURL)
}

func TestLoad_JWTTTL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"disabled", "0", 0, false},
		{"hours", "72h", 72 * time.Hour, false},
		{"garbage", "forever", 0, true},
		{"negative", "-1h", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s")
			t.Setenv("JWT_TTL", tt.raw)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.JWTTTL)
		})
	}
}

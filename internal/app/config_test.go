package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, 20, cfg.RateLimitRequests)
	assert.Equal(t, "localhost", cfg.Postgres().Host)
	assert.Equal(t, 180*time.Second, cfg.OpenAI().Timeout)
	assert.Empty(t, cfg.Origins())
	assert.False(t, cfg.Otel().Enabled)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(
		"JWT_SECRET_KEY=fromfile\nPORT=9000\nALLOWED_ORIGINS=https://a.example.com, https://b.example.com\nOTEL_ENABLED=true\n",
	), 0o600))
	t.Setenv("PORT", "9100")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.JWTSecretKey)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins())
	assert.True(t, cfg.Otel().Enabled)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "0")
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
}

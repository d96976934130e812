package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	require.Equal(t, "users.json", cfg.Store.Path)

	require.False(t, cfg.Archive.Enabled)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, 10*time.Minute, cfg.Redis.TokenTTL)

	require.Equal(t, 10*time.Second, cfg.Websocket.WriteTimeout)
	require.Equal(t, int64(64*1024), cfg.Websocket.MaxMessageSize)

	require.Equal(t, 2160*time.Hour, cfg.Retention.MaxReadingAge)
	require.Equal(t, 6*time.Hour, cfg.Retention.SweepInterval)
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Path: "users.json"}}
	require.NoError(t, validateConfig(cfg))

	cfg.Store.Path = ""
	require.Error(t, validateConfig(cfg))

	cfg.Store.Path = "users.json"
	cfg.Archive.Enabled = true
	require.Error(t, validateConfig(cfg))
	cfg.Archive.Host = "localhost"
	require.NoError(t, validateConfig(cfg))

	cfg.Redis.Enabled = true
	require.Error(t, validateConfig(cfg))
	cfg.Redis.Host = "localhost"
	require.NoError(t, validateConfig(cfg))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:3000", cfg.UserServiceURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 40*time.Second, cfg.TurnDuration)
	assert.Equal(t, 1500*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 2, cfg.TurnsPerPlayer)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("TURN_DURATION", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.TurnDuration)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
}

package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-cinema-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := config.FromMap(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/api", c.GetBaseURL())
	require.Equal(t, time.Duration(0), c.GetRequestTimeout())
	require.Equal(t, float64(0), c.GetRateLimit())
	require.False(t, c.GetAutoRenew())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "./data/session.json", c.GetSessionFile())
	require.Empty(t, c.GetRedisAddr())
	require.Equal(t, 720*time.Hour, c.GetSessionTTL())
}

func TestOverrides(t *testing.T) {
	c, err := config.FromMap(map[string]string{
		"CINEMA_API_BASE_URL":   "https://cinema.example.com/api/",
		"CINEMA_API_TIMEOUT":    "15s",
		"CINEMA_API_RATE_LIMIT": "2.5",
		"CINEMA_API_BURST":      "0",
		"CINEMA_AUTO_RENEW":     "true",
		"CINEMA_REDIS_ADDR":     "localhost:6379",
		"CINEMA_REDIS_DB":       "3",
		"LOG_LEVEL":             "debug",
	})
	require.NoError(t, err)

	require.Equal(t, "https://cinema.example.com/api", c.GetBaseURL())
	require.Equal(t, 15*time.Second, c.GetRequestTimeout())
	require.Equal(t, 2.5, c.GetRateLimit())
	require.Equal(t, 1, c.GetRateBurst())
	require.True(t, c.GetAutoRenew())
	require.Equal(t, "localhost:6379", c.GetRedisAddr())
	require.Equal(t, 3, c.GetRedisDB())
	require.Equal(t, "debug", c.GetLogLevel())
}

func TestInvalid(t *testing.T) {
	t.Run("Bad scheme", func(t *testing.T) {
		_, err := config.FromMap(map[string]string{"CINEMA_API_BASE_URL": "ftp://host/api"})
		require.Error(t, err)
	})

	t.Run("Negative rate", func(t *testing.T) {
		_, err := config.FromMap(map[string]string{"CINEMA_API_RATE_LIMIT": "-1"})
		require.Error(t, err)
	})

	t.Run("Unparseable duration", func(t *testing.T) {
		_, err := config.FromMap(map[string]string{"CINEMA_API_TIMEOUT": "soon"})
		require.Error(t, err)
	})
}

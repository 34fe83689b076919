package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults apply when only the API key is set", func(t *testing.T) {
		t.Setenv("CURRENCY_API_KEY", "k")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "./data", cfg.DataDir)
		assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
		assert.Equal(t, 6*time.Second, cfg.BackfillPause)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("CURRENCY_API_KEY", "k")
		t.Setenv("PORT", "9999")
		t.Setenv("BACKFILL_PAUSE", "2s")
		t.Setenv("CURRENCY_API_TIMEOUT", "30s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, 2*time.Second, cfg.BackfillPause)
		assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	})

	t.Run("Missing API key fails", func(t *testing.T) {
		t.Setenv("CURRENCY_API_KEY", "")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("Unparsable duration falls back to the default", func(t *testing.T) {
		t.Setenv("CURRENCY_API_KEY", "k")
		t.Setenv("BACKFILL_PAUSE", "six seconds")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 6*time.Second, cfg.BackfillPause)
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/activity.json", cfg.Storage.DataFile)
	assert.True(t, cfg.Scheduler.Enabled)
	// One sweep per 24 hours of uptime; members are nudged at most once
	// per cycle.
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.SweepInterval)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.InactivityThreshold)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("SCHEDULER_SWEEP_INTERVAL", "1h")
	t.Setenv("INACTIVITY_THRESHOLD", "72h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Scheduler.SweepInterval)
	assert.Equal(t, 72*time.Hour, cfg.Scheduler.InactivityThreshold)
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 2*time.Second, cfg.DelayBetweenBatches)
	assert.Equal(t, 30*time.Second, cfg.StepTimeout)
	assert.True(t, cfg.VerifyDownloads)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AFIP_MAX_CONCURRENT", "2")
	t.Setenv("AFIP_DELAY_BETWEEN_BATCHES", "5")
	t.Setenv("AFIP_STEP_TIMEOUT", "1m")
	t.Setenv("AFIP_DOWNLOADS_DIR", "/tmp/facturas")
	t.Setenv("AFIP_VERIFY_DOWNLOADS", "false")
	t.Setenv("AFIP_SERVER_ADDRESS", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxConcurrent)
	// bare integers are seconds, Go duration strings work too
	assert.Equal(t, 5*time.Second, cfg.DelayBetweenBatches)
	assert.Equal(t, time.Minute, cfg.StepTimeout)
	assert.Equal(t, "/tmp/facturas", cfg.DownloadsDir)
	assert.False(t, cfg.VerifyDownloads)
	assert.Equal(t, ":9090", cfg.ServerAddress)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero concurrency", "AFIP_MAX_CONCURRENT", "0"},
		{"non-numeric concurrency", "AFIP_MAX_CONCURRENT", "many"},
		{"negative delay", "AFIP_DELAY_BETWEEN_BATCHES", "-3"},
		{"garbage timeout", "AFIP_STEP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	require.NoError(t, err)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "stderr", lc.Output)
}

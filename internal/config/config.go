package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezonia/afip-submitter/internal/logger"
)

// Config is the single configuration surface consumed by the scheduler,
// runner and server constructors. No component reads the process
// environment on its own.
type Config struct {
	// MaxConcurrent bounds how many sessions run at once within a batch
	MaxConcurrent int

	// DelayBetweenBatches is the pause between batches, to stay clear of
	// the portal's rate limiting
	DelayBetweenBatches time.Duration

	// StepTimeout bounds each pipeline step's external waits
	StepTimeout time.Duration

	// DownloadsDir is where generated invoice PDFs are organized per
	// issuer CUIT; empty leaves files in the session's temporary storage
	DownloadsDir string

	// VerifyDownloads enables structural validation of downloaded PDFs
	VerifyDownloads bool

	// ServerAddress is the listen address for serve mode
	ServerAddress string

	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxConcurrent, err := getEnvInt("AFIP_MAX_CONCURRENT", 4)
	if err != nil {
		return nil, err
	}
	delay, err := getEnvDuration("AFIP_DELAY_BETWEEN_BATCHES", 2*time.Second)
	if err != nil {
		return nil, err
	}
	stepTimeout, err := getEnvDuration("AFIP_STEP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		MaxConcurrent:       maxConcurrent,
		DelayBetweenBatches: delay,
		StepTimeout:         stepTimeout,
		DownloadsDir:        getEnv("AFIP_DOWNLOADS_DIR", ""),
		VerifyDownloads:     getEnv("AFIP_VERIFY_DOWNLOADS", "true") == "true",
		ServerAddress:       getEnv("AFIP_SERVER_ADDRESS", ":8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogOutput:           getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("AFIP_MAX_CONCURRENT must be a positive integer")
	}
	if c.DelayBetweenBatches < 0 {
		return fmt.Errorf("AFIP_DELAY_BETWEEN_BATCHES cannot be negative")
	}
	if c.StepTimeout <= 0 {
		return fmt.Errorf("AFIP_STEP_TIMEOUT must be positive")
	}
	return nil
}

// LoggerConfig returns the logging section of the configuration
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		Output: c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

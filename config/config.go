// Package config loads application configuration from environment
// variables. Every setting has a default; only the bot token is required.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Storage (JSON file persistence)
	Storage StorageConfig

	// Redis (optional rank display cache)
	Redis RedisConfig

	// Telegram Bot
	Telegram TelegramConfig

	// Scheduler (inactivity sweep)
	Scheduler SchedulerConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// StorageConfig holds JSON file persistence settings.
type StorageConfig struct {
	// Path to the activity data file.
	DataFile string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Timeouts
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Enabled turns the rank cache on; the bot runs fine without it.
	Enabled bool
}

// TelegramConfig holds Telegram Bot settings.
type TelegramConfig struct {
	// Bot token from @BotFather
	Token string

	// OwnerTelegramID is the bot owner; always an admin.
	OwnerTelegramID int64

	// AdminIDs are additional admin Telegram IDs.
	AdminIDs []int64
}

// SchedulerConfig holds background job settings.
type SchedulerConfig struct {
	// Enable/disable scheduler
	Enabled bool

	// Tick is how often due jobs are checked.
	Tick time.Duration

	// SweepInterval is how often the inactivity sweep runs.
	SweepInterval time.Duration

	// InactivityThreshold is how long a member may stay silent before
	// being nudged.
	InactivityThreshold time.Duration
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App:           loadAppConfig(),
		Storage:       loadStorageConfig(),
		Redis:         loadRedisConfig(),
		Telegram:      loadTelegramConfig(),
		Scheduler:     loadSchedulerConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	env := Environment(getEnv("APP_ENV", "development"))

	return AppConfig{
		Name:            getEnv("APP_NAME", "codegrind-bot"),
		Environment:     env,
		Debug:           env == EnvDevelopment || getEnvBool("APP_DEBUG", false),
		Version:         getEnv("APP_VERSION", "0.1.0"),
		ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		DataFile: getEnv("DATA_FILE", "data/activity.json"),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		Enabled:      getEnvBool("REDIS_ENABLED", false),
	}
}

func loadTelegramConfig() TelegramConfig {
	return TelegramConfig{
		Token:           getEnv("TELEGRAM_BOT_TOKEN", ""),
		OwnerTelegramID: getEnvInt64("OWNER_TELEGRAM_ID", 0),
		AdminIDs:        getEnvInt64Slice("TELEGRAM_ADMIN_IDS", nil),
	}
}

func loadSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:             getEnvBool("SCHEDULER_ENABLED", true),
		Tick:                getEnvDuration("SCHEDULER_TICK", 30*time.Second),
		SweepInterval:       getEnvDuration("SCHEDULER_SWEEP_INTERVAL", 24*time.Hour),
		InactivityThreshold: getEnvDuration("INACTIVITY_THRESHOLD", 24*time.Hour),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Telegram.Token == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.Storage.DataFile == "" {
		errs = append(errs, "DATA_FILE must not be empty")
	}

	if c.Scheduler.SweepInterval <= 0 {
		errs = append(errs, "SCHEDULER_SWEEP_INTERVAL must be positive")
	}

	if c.Scheduler.InactivityThreshold <= 0 {
		errs = append(errs, "INACTIVITY_THRESHOLD must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvInt64Slice(key string, defaultVal []int64) []int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	parts := strings.Split(val, ",")
	result := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		i, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		result = append(result, i)
	}
	return result
}

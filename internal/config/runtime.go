// Package config provides centralized configuration for Tasksync runtime values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/tasksync/internal/model"
)

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Auth configuration for the optional remote auth server
	Auth AuthConfig `yaml:"auth"`

	// Pomodoro timer configuration
	Pomodoro PomodoroConfig `yaml:"pomodoro"`

	// Toast notification configuration
	Toast ToastConfig `yaml:"toast"`

	// Reminders configures 'tasksync watch'
	Reminders RemindersConfig `yaml:"reminders"`

	// Log configures diagnostic logging
	Log LogConfig `yaml:"log"`
}

// LogConfig holds diagnostic logging configuration. --debug overrides it.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is text or json.
	// Default: text
	Format string `yaml:"format"`

	// File receives log lines instead of stderr when set.
	File string `yaml:"file,omitempty"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory. Empty uses the XDG data directory,
	// ":memory:" a volatile in-memory store and "none" no store at all.
	Path string `yaml:"path"`

	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 10MB (10 * 1024 * 1024 bytes)
	MinFreeSpace uint64 `yaml:"min_free_space"`
}

// AuthConfig holds remote auth client configuration.
type AuthConfig struct {
	// APIURL is the auth server base URL. Empty keeps auth local.
	APIURL string `yaml:"api_url"`

	// Timeout is the HTTP request timeout.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is how many times a transient failure is retried.
	// Default: 2
	MaxRetries int `yaml:"max_retries"`

	// RequireLogin gates task, calendar and pomodoro commands behind a
	// signed-in user.
	// Default: true
	RequireLogin bool `yaml:"require_login"`
}

// PomodoroConfig holds timer configuration.
type PomodoroConfig struct {
	// TickInterval is the wall-clock length of one countdown tick.
	// Default: 1s
	TickInterval time.Duration `yaml:"tick_interval"`
}

// ToastConfig holds notification configuration.
type ToastConfig struct {
	// Duration is how long a toast stays visible.
	// Default: 3s
	Duration time.Duration `yaml:"duration"`
}

// RemindersConfig holds task reminder configuration.
type RemindersConfig struct {
	// Lead is how long before a task starts its reminder is sent.
	// Default: 10m
	Lead time.Duration `yaml:"lead"`

	// Schedule is the cron spec (with seconds) for reminder checks.
	// Default: "0 * * * * *" (every minute)
	Schedule string `yaml:"schedule"`

	// DailyAgenda is the "HH:MM" time the day's agenda is sent.
	// Empty disables the agenda.
	DailyAgenda string `yaml:"daily_agenda"`

	// Webhooks receive reminders in addition to the terminal.
	Webhooks []model.Webhook `yaml:"webhooks,omitempty"`

	// WebhookTimeout is the HTTP timeout for one webhook delivery.
	// Default: 30s
	WebhookTimeout time.Duration `yaml:"webhook_timeout"`

	// WebhookRetries is how many times a failed delivery is retried.
	// Default: 2
	WebhookRetries int `yaml:"webhook_retries"`
}

// Webhook returns the configured webhook with the given name.
func (c RemindersConfig) Webhook(name string) (model.Webhook, bool) {
	for _, w := range c.Webhooks {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return model.Webhook{}, false
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			MinFreeSpace: 10 * 1024 * 1024, // 10MB
		},
		Auth: AuthConfig{
			Timeout:      15 * time.Second,
			MaxRetries:   2,
			RequireLogin: true,
		},
		Pomodoro: PomodoroConfig{
			TickInterval: time.Second,
		},
		Toast: ToastConfig{
			Duration: 3 * time.Second,
		},
		Reminders: RemindersConfig{
			Lead:           10 * time.Minute,
			Schedule:       "0 * * * * *",
			WebhookTimeout: 30 * time.Second,
			WebhookRetries: 2,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// RemoteAuthEnabled returns true when an auth server is configured.
func (c *RuntimeConfig) RemoteAuthEnabled() bool {
	return c.Auth.APIURL != ""
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults, then the config file, then the environment.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	// A broken config file must not keep the CLI from starting.
	_ = cfg.LoadFile(DefaultFilePath())
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	if v := os.Getenv("TASKSYNC_DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TASKSYNC_MIN_FREE_SPACE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpace = n
		}
	}

	// Auth configuration
	if v := os.Getenv("TASKSYNC_API_URL"); v != "" {
		c.Auth.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TASKSYNC_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Auth.Timeout = d
		}
	}
	if v := os.Getenv("TASKSYNC_API_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Auth.MaxRetries = n
		}
	}

	if v := os.Getenv("TASKSYNC_REQUIRE_LOGIN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Auth.RequireLogin = b
		}
	}

	// Pomodoro configuration
	if v := os.Getenv("TASKSYNC_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Pomodoro.TickInterval = d
		}
	}

	// Toast configuration
	if v := os.Getenv("TASKSYNC_TOAST_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Toast.Duration = d
		}
	}

	// Reminder configuration
	if v := os.Getenv("TASKSYNC_REMINDER_LEAD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Reminders.Lead = d
		}
	}
	if v := os.Getenv("TASKSYNC_REMINDER_SCHEDULE"); v != "" {
		c.Reminders.Schedule = v
	}
	if v := os.Getenv("TASKSYNC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TASKSYNC_LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("TASKSYNC_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("TASKSYNC_DAILY_AGENDA"); v != "" {
		c.Reminders.DailyAgenda = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
func (c *RuntimeConfig) Reset() {
	*c = *DefaultRuntimeConfig()
}

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultMaxUploadBytes      = 10 << 20
	DefaultDelayHours          = 24
	DefaultRetryDelayMinutes   = 30
	DefaultMaxAttempts         = 3
	DefaultBatchSize           = 100
	DefaultPollIntervalMinutes = 5
	DefaultSendTimeoutSeconds  = 30
	DefaultMetricsAddr         = ":9102"
)

// Config represents the service configuration loaded from a JSON file.
// All fields are optional; missing values use defaults or environment
// variables applied by the CLI layer.
type Config struct {
	// Storage
	StorageRoot    string `json:"storage_root,omitempty"`     // Root directory for stored documents
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Upload size ceiling

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Mail transport
	SMTPHost     string `json:"smtp_host,omitempty"`
	SMTPPort     int    `json:"smtp_port,omitempty"`
	SMTPFrom     string `json:"smtp_from,omitempty"`
	SMTPUsername string `json:"smtp_username,omitempty"`
	SMTPPassword string `json:"smtp_password,omitempty"`

	// Delivery
	DelayHours          int `json:"delay_hours,omitempty"`           // Report delay after upload
	RetryDelayMinutes   int `json:"retry_delay_minutes,omitempty"`   // Gap between retry attempts
	MaxAttempts         int `json:"max_attempts,omitempty"`          // Delivery attempt ceiling
	BatchSize           int `json:"batch_size,omitempty"`            // Max records per ProcessDue run
	PollIntervalMinutes int `json:"poll_interval_minutes,omitempty"` // Worker poll cadence
	SendTimeoutSeconds  int `json:"send_timeout_seconds,omitempty"`  // Per-send transport timeout

	// Observability
	MetricsAddr string `json:"metrics_addr,omitempty"` // Prometheus listen address
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills every zero-valued tuning field with its default.
func (c *Config) ApplyDefaults() {
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.DelayHours == 0 {
		c.DelayHours = DefaultDelayHours
	}
	if c.RetryDelayMinutes == 0 {
		c.RetryDelayMinutes = DefaultRetryDelayMinutes
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.PollIntervalMinutes == 0 {
		c.PollIntervalMinutes = DefaultPollIntervalMinutes
	}
	if c.SendTimeoutSeconds == 0 {
		c.SendTimeoutSeconds = DefaultSendTimeoutSeconds
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = DefaultMetricsAddr
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.DelayHours < 0 || c.DelayHours > 48 {
		return fmt.Errorf("config error: 'delay_hours' must be between 0 and 48")
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("config error: 'max_attempts' must be non-negative")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("config error: 'batch_size' must be non-negative")
	}
	if c.SMTPPort < 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("config error: 'smtp_port' must be a valid port number")
	}
	if c.StorageRoot != "" {
		if info, err := os.Stat(c.StorageRoot); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: storage root is not a directory: %s", c.StorageRoot)
		}
	}
	return nil
}

// Package config provides linecut configuration loaded from the
// environment, optionally seeded from a .env file.
//
// Every variable uses the LINECUT_ prefix. Command-line flags take
// precedence over these values when they are set explicitly.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix for every setting.
const Prefix = "LINECUT"

// Default values. Struct tag defaults below must be literals, so the
// tests keep the two in sync.
const (
	DefaultAtomic       = true
	DefaultBackupSuffix = ".bak"
	DefaultConcurrency  = 4
	DefaultLogLevel     = "info"
	DefaultLogFormat    = LogFormatText
)

// LogFormat selects the log output encoding.
type LogFormat string

const (
	// LogFormatText is logrus' human-readable key=value format.
	LogFormatText LogFormat = "text"

	// LogFormatJSON emits one JSON object per log entry.
	LogFormatJSON LogFormat = "json"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Atomic selects temp-file-and-rename writes.
	// Env: LINECUT_ATOMIC (default: true)
	Atomic bool `envconfig:"ATOMIC" default:"true"`

	// Backup saves the original file before modifying it.
	// Env: LINECUT_BACKUP (default: false)
	Backup bool `envconfig:"BACKUP" default:"false"`

	// BackupSuffix is appended to the file path to name the backup.
	// Env: LINECUT_BACKUP_SUFFIX (default: .bak)
	BackupSuffix string `envconfig:"BACKUP_SUFFIX" default:".bak"`

	// Concurrency bounds how many files a batch processes at once.
	// Env: LINECUT_CONCURRENCY (default: 4)
	Concurrency int `envconfig:"CONCURRENCY" default:"4"`

	// LogLevel is the log verbosity (debug, info, warn, error).
	// Env: LINECUT_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is text or json.
	// Env: LINECUT_LOG_FORMAT (default: text)
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// RequireClean refuses to modify files with uncommitted Git changes.
	// Env: LINECUT_REQUIRE_CLEAN (default: false)
	RequireClean bool `envconfig:"REQUIRE_CLEAN" default:"false"`
}

// LoadFromEnv reads configuration from LINECUT_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error. Variables already present in the
// environment are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}

// LoadConfig loads the optional .env file, then the environment, and
// validates the result.
func LoadConfig(envPath string) (EnvConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return EnvConfig{}, fmt.Errorf("load %s: %w", envPath, err)
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return EnvConfig{}, err
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize lowercases enum-like values and trims whitespace.
func (c EnvConfig) Normalize() EnvConfig {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.BackupSuffix = strings.TrimSpace(c.BackupSuffix)
	return c
}

// Validate rejects values that cannot be used as-is.
func (c EnvConfig) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%s_CONCURRENCY must be at least 1, got %d", Prefix, c.Concurrency)
	}
	if c.BackupSuffix == "" {
		return fmt.Errorf("%s_BACKUP_SUFFIX must not be empty", Prefix)
	}
	switch LogFormat(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be %q or %q, got %q", Prefix, LogFormatText, LogFormatJSON, c.LogFormat)
	}
	return nil
}

// Format returns the typed log format.
func (c EnvConfig) Format() LogFormat {
	return LogFormat(c.LogFormat)
}

// Package app provides the application configuration and container.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	File     string         `yaml:"-"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Capture  CaptureConfig  `yaml:"capture"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	// RunMode is the gin run mode.
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort is the listen address.
	HttpPort string `yaml:"http-port" default:":9010"`
	// ReadTimeout in seconds.
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout in seconds.
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// ContextTimeout bounds request handling, in seconds.
	ContextTimeout int `yaml:"context-timeout" default:"60"`
}

// LogConfig configures zap.
type LogConfig struct {
	// Level is parsed by zapcore.ParseLevel.
	Level string `yaml:"level" default:"info"`
	// File is the log file path, empty for stderr only.
	File string `yaml:"file" default:"storage/logs/capture.log"`
	// Production switches to JSON output.
	Production bool `yaml:"production" default:"true"`
}

// DatabaseConfig configures the sqlite store.
type DatabaseConfig struct {
	Path        string `yaml:"path" default:"storage/database/capture.sqlite3"`
	AutoMigrate bool   `yaml:"auto-migrate" default:"true"`
	// MaxIdleConns default 10.
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns default 100.
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime supports formats like 30m, 1h.
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
}

// CaptureConfig carries the coordinator timing parameters. The two
// debounce delays are deliberately separate: structured item fields
// settle fast, long-form note bodies get a longer quiet period.
type CaptureConfig struct {
	// StructuredDebounce is the quiet period for task and list drafts.
	StructuredDebounce string `yaml:"structured-debounce" default:"500ms"`
	// LongformDebounce is the quiet period for note drafts.
	LongformDebounce string `yaml:"longform-debounce" default:"2s"`
	// DeletionGrace is the undo window before a deletion commits.
	DeletionGrace string `yaml:"deletion-grace" default:"5s"`
	// StoreWriteTimeout bounds a single store write.
	StoreWriteTimeout string `yaml:"store-write-timeout" default:"30s"`
	// SweepInterval is how often stuck deletion commits are retried.
	SweepInterval string `yaml:"sweep-interval" default:"1m"`
}

// LoadConfig reads the YAML file at path, applying defaults for every
// omitted field.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.File = abs
	return cfg, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return os.WriteFile(c.File, data, 0o644)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (c *CaptureConfig) GetStructuredDebounce() time.Duration {
	return parseDuration(c.StructuredDebounce, 500*time.Millisecond)
}

func (c *CaptureConfig) GetLongformDebounce() time.Duration {
	return parseDuration(c.LongformDebounce, 2*time.Second)
}

func (c *CaptureConfig) GetDeletionGrace() time.Duration {
	return parseDuration(c.DeletionGrace, 5*time.Second)
}

func (c *CaptureConfig) GetStoreWriteTimeout() time.Duration {
	return parseDuration(c.StoreWriteTimeout, 30*time.Second)
}

func (c *CaptureConfig) GetSweepInterval() time.Duration {
	return parseDuration(c.SweepInterval, time.Minute)
}

func (c *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	return parseDuration(c.ConnMaxLifetime, 30*time.Minute)
}

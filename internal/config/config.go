// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"github.com/okian/agenda/internal/adapters/blob"
	"github.com/okian/agenda/internal/adapters/export"
	"github.com/okian/agenda/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the loopback listen address of the HTTP adapter.
	Addr string `koanf:"addr"`

	// StoreBackend selects the blob store: file, sqlite or memory.
	StoreBackend string `koanf:"store_backend"`

	// StoreDir holds <store_key>.json (file) or agenda.db (sqlite).
	StoreDir string `koanf:"store_dir"`

	// StoreKey names the persisted events blob.
	StoreKey string `koanf:"store_key"`

	// IncludeRegionalHolidays adds the Comunidad de Madrid holidays.
	IncludeRegionalHolidays bool `koanf:"include_regional_holidays"`

	// GoodFridayOverrides maps a year to a YYYY-MM-DD date replacing the
	// computed Good Friday.
	GoodFridayOverrides map[string]string `koanf:"good_friday_overrides"`

	// SaveQueueSize bounds the save pipeline.
	SaveQueueSize int `koanf:"save_queue_size"`

	// SaveTimeoutMS bounds how long a mutation waits for its save.
	SaveTimeoutMS int `koanf:"save_timeout_ms"`

	// ICSProductID is the PRODID of exported calendars.
	ICSProductID string `koanf:"ics_product_id"`

	// ShutdownTimeout is the HTTP drain grace period, e.g. "30s" or "1m30s".
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    "127.0.0.1:9080",
		StoreBackend:            blob.BackendFile,
		StoreDir:                "data",
		StoreKey:                "calendarEvents",
		IncludeRegionalHolidays: true,
		GoodFridayOverrides:     map[string]string{},
		SaveQueueSize:           64,
		SaveTimeoutMS:           5000,
		ICSProductID:            export.DefaultProductID,
		ShutdownTimeout:         "30s",
	}
}

// SaveTimeout returns SaveTimeoutMS as a duration.
func (c *Config) SaveTimeout() time.Duration {
	return time.Duration(c.SaveTimeoutMS) * time.Millisecond
}

// ShutdownGrace parses ShutdownTimeout.
func (c *Config) ShutdownGrace() (time.Duration, error) {
	d, err := str2duration.ParseDuration(strings.TrimSpace(c.ShutdownTimeout))
	if err != nil {
		return 0, fmt.Errorf("%w: shutdown_timeout: %w", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return d, nil
}

// GoodFriday returns the parsed overrides keyed by year.
func (c *Config) GoodFriday() (map[int]model.DateKey, error) {
	out := make(map[int]model.DateKey, len(c.GoodFridayOverrides))
	for ys, ds := range c.GoodFridayOverrides {
		year, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("%w: good_friday_overrides: bad year %q", ErrInvalidConfig, ys)
		}
		key, err := model.ParseDateKey(strings.TrimSpace(ds))
		if err != nil {
			return nil, fmt.Errorf("%w: good_friday_overrides[%d]: %w", ErrInvalidConfig, year, err)
		}
		if key.Date().Year != year {
			return nil, fmt.Errorf("%w: good_friday_overrides[%d]: %s is not in that year", ErrInvalidConfig, year, key)
		}
		out[year] = key
	}
	return out, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.StoreKey) == "":
		return fmt.Errorf("%w: store_key must not be empty", ErrInvalidConfig)
	case strings.ContainsAny(c.StoreKey, `/\`) || c.StoreKey == "." || c.StoreKey == "..":
		return fmt.Errorf("%w: store_key %q must be a plain name", ErrInvalidConfig, c.StoreKey)
	case strings.TrimSpace(c.StoreDir) == "":
		return fmt.Errorf("%w: store_dir must not be empty", ErrInvalidConfig)
	case c.SaveQueueSize <= 0:
		return fmt.Errorf("%w: save_queue_size must be positive", ErrInvalidConfig)
	case c.SaveTimeoutMS <= 0:
		return fmt.Errorf("%w: save_timeout_ms must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.ICSProductID) == "":
		return fmt.Errorf("%w: ics_product_id must not be empty", ErrInvalidConfig)
	}

	switch strings.ToLower(strings.TrimSpace(c.StoreBackend)) {
	case blob.BackendFile, blob.BackendSQLite, blob.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}

	if _, err := c.ShutdownGrace(); err != nil {
		return err
	}
	_, err := c.GoodFriday()
	return err
}

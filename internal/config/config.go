package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/ticketsys/internal/directory"
)

// Config holds runtime settings for the interpreter.
//
// Fields:
//   - Capacity: number of directory slots; keep it well above the expected
//     account count so probe chains stay short.
//   - Hash: slot hash, "xxhash" or "fnv1a".
//   - LogLevel / LogFormat: diagnostics written to standard error.
//   - SlowCommandThreshold: commands slower than this are logged at warn level.
type Config struct {
	Capacity             int           `validate:"gt=0"`
	Hash                 string        `validate:"oneof=xxhash fnv1a"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	LogFormat            string        `validate:"oneof=text json"`
	SlowCommandThreshold time.Duration `validate:"gte=0"`
}

// LoadDefaults populates c with the values used when nothing is configured.
func (c *Config) LoadDefaults() {
	c.Capacity = directory.DefaultCapacity
	c.Hash = "xxhash"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SlowCommandThreshold = 100 * time.Millisecond
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the optional config
// file, then command-line flags. It panics if the file cannot be read or a
// flag cannot be parsed.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

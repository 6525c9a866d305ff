package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/ticketsys/internal/flagx"
	"github.com/dmitrijs2005/ticketsys/internal/timex"
)

// FileConfig is the on-disk shape of Config. Pointer fields distinguish a
// missing key from an explicit zero.
type FileConfig struct {
	Capacity             *int            `json:"capacity" yaml:"capacity"`
	Hash                 *string         `json:"hash" yaml:"hash"`
	LogLevel             *string         `json:"log_level" yaml:"log_level"`
	LogFormat            *string         `json:"log_format" yaml:"log_format"`
	SlowCommandThreshold *timex.Duration `json:"slow_command_threshold" yaml:"slow_command_threshold"`
}

func decodeFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return nil, err
	}
	return fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.Capacity != nil {
		cfg.Capacity = *fc.Capacity
	}
	if fc.Hash != nil {
		cfg.Hash = *fc.Hash
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.SlowCommandThreshold != nil {
		cfg.SlowCommandThreshold = fc.SlowCommandThreshold.Duration
	}
}

// parseFile overlays cfg with the file named by -c/-config, if any. It panics
// on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := decodeFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

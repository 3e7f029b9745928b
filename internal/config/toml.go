// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Axis   AxisConfig   `toml:"axis"`
	Limits LimitsConfig `toml:"limits"`
}

// AxisConfig maps axis engine settings.
type AxisConfig struct {
	Domain        *string  `toml:"domain"`
	MinExtent     *int     `toml:"min-extent"`
	TargetSpacing *float64 `toml:"target-spacing"`
	ResizePolicy  *string  `toml:"resize-policy"`
	RoundShift    *bool    `toml:"round-shift"`
	CellWidth     *int     `toml:"cell-width"`
}

// LimitsConfig maps value and scale bounds. Begin and End are parsed by the
// selected domain.
type LimitsConfig struct {
	Begin    *string  `toml:"begin"`
	End      *string  `toml:"end"`
	MinScale *float64 `toml:"min-scale"`
	MaxScale *float64 `toml:"max-scale"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

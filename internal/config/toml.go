// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Pick  PickConfig  `toml:"pick"`
	Fetch FetchConfig `toml:"fetch"`
}

// PickConfig maps ranking and selection settings.
type PickConfig struct {
	Pool      *int    `toml:"pool"`
	Select    *int    `toml:"select"`
	Direction *string `toml:"direction"`
	URL       *string `toml:"url"`
	MaxGames  *int    `toml:"max-games"`
	Width     *int    `toml:"width"`
}

// FetchConfig maps scraper settings.
type FetchConfig struct {
	Timeout   *Duration `toml:"timeout"`
	UserAgent *string   `toml:"user-agent"`
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

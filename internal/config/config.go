// Package config loads the optional YAML configuration file and
// supplies defaults for everything it leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"sitrep/internal/log"
	"sitrep/internal/savefile"
)

// Config carries every tunable the tools read. Zero values never reach
// callers: Load fills defaults for missing keys.
type Config struct {
	SavesDir     string `mapstructure:"saves_dir"`
	GameDir      string `mapstructure:"game_dir"`
	DataFile     string `mapstructure:"data_file"`
	ReportsDir   string `mapstructure:"reports_dir"`
	HistoryDB    string `mapstructure:"history_db"`
	MaxDepth     int    `mapstructure:"max_depth"`
	Workers      int    `mapstructure:"workers"`
	SixelEncoder string `mapstructure:"sixel_encoder"`
	Theme        string `mapstructure:"theme"`
}

// Load reads cfgPath when the file exists and fills the rest from
// defaults. A missing file is not an error since every key has a
// usable default; a file that exists but does not parse is.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
			}
			log.Debug("no config file, using defaults", "path", cfgPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("saves_dir", ".")
	v.SetDefault("game_dir", "")
	v.SetDefault("data_file", "game_data.json")
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("history_db", "sitrep.db")
	v.SetDefault("max_depth", savefile.DefaultMaxDepth)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("sixel_encoder", "rasterm")
	v.SetDefault("theme", "warroom")
}

// LocalisationDir returns the game's english localisation directory,
// or "" when no game directory is configured. The spelling follows the
// game's own directory layout.
func (c *Config) LocalisationDir() string {
	if c.GameDir == "" {
		return ""
	}
	return filepath.Join(c.GameDir, "localisation", "english")
}

// Package config loads the optional dundork.yaml settings file and applies
// DUNDORK_* environment overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for a session. Every field has a
// sensible default; the file and the environment only override.
type Config struct {
	DataDir  string `yaml:"data_dir"`  // world CSV directory
	Seed     int64  `yaml:"seed"`      // 0 = derive from the clock
	Class    string `yaml:"class"`     // requested player class
	UI       string `yaml:"ui"`        // auto | plain | tui
	MetaPath string `yaml:"meta_path"` // progression record location
}

// Default returns the baseline configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:  "data",
		UI:       "auto",
		MetaPath: filepath.Join(home, ".dundork", "meta.json"),
	}
}

// Load reads the YAML file at path, layered over the defaults. A missing
// file is not an error: defaults plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fine: run on defaults.
	case err != nil:
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.validate()
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DUNDORK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DUNDORK_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("DUNDORK_CLASS"); v != "" {
		cfg.Class = v
	}
	if v := os.Getenv("DUNDORK_UI"); v != "" {
		cfg.UI = v
	}
	if v := os.Getenv("DUNDORK_META"); v != "" {
		cfg.MetaPath = v
	}
}

func (c Config) validate() error {
	switch c.UI {
	case "auto", "plain", "tui":
		return nil
	}
	return fmt.Errorf("invalid ui mode %q (want auto, plain, or tui)", c.UI)
}

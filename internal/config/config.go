// Package config loads the shell-side settings spec.md §6 says are the
// host's responsibility to persist and push into the engine at
// startup: method, modern tone, W shortcut, ESC restore, English
// auto-restore, auto-capitalize, and the abbreviation table.
//
// Grounded on miken90-fkey/platforms/linux/config/config.go: same
// XDG-config-dir convention, same BurntSushi/toml load/save pair, with
// fields renamed and extended to match this session's full setter
// surface (spec.md §3) plus the abbreviation map the teacher's shell
// never had.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors every session setter in spec.md §3.
type Config struct {
	Enabled             bool   `toml:"enabled"`
	Method              int    `toml:"method"` // 0=Telex, 1=VNI
	ModernTone          bool   `toml:"modern_tone"`
	SkipWShortcut       bool   `toml:"skip_w_shortcut"`
	EscRestore          bool   `toml:"esc_restore"`
	EnglishAutoRestore  bool   `toml:"english_auto_restore"`
	AutoCapitalize      bool   `toml:"auto_capitalize"`

	Abbreviations map[string]string `toml:"abbreviations"`
}

// Default returns the engine's own defaults (spec.md §3): Telex,
// modern tone, W shortcut on, every other auxiliary transform off.
func Default() *Config {
	return &Config{
		Enabled:       true,
		Method:        0,
		ModernTone:    true,
		SkipWShortcut: false,
		Abbreviations: map[string]string{},
	}
}

// Path returns the XDG-compliant config file location.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "govietd", "config.toml")
}

// Load reads the config file, writing and returning the defaults if it
// does not yet exist.
func Load() (*Config, error) {
	path := Path()
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Abbreviations == nil {
		cfg.Abbreviations = map[string]string{}
	}
	return cfg, nil
}

// Save writes cfg to the XDG config path, creating the directory if
// needed.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

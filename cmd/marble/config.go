package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configEnvVar = "MARBLE_CONFIG"

// Config holds the command line tool settings.
type Config struct {
	LogLevel string       `toml:"log_level"`
	REPL     REPLConfig   `toml:"repl"`
	Format   FormatConfig `toml:"format"`

	source string
}

// REPLConfig holds interactive shell settings.
type REPLConfig struct {
	Prompt       string `toml:"prompt"`
	Mode         string `toml:"mode"`
	HistoryLimit int    `toml:"history_limit"`
}

// FormatConfig holds settings for the fmt command.
type FormatConfig struct {
	Extension string `toml:"extension"`
}

const (
	modeCode   = "code"
	modeTokens = "tokens"
	modeAST    = "ast"
)

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{source: "defaults"}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML config file and fills in defaults for missing keys.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.source = path

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.REPL.Mode == "" {
		c.REPL.Mode = modeCode
	}
	if c.REPL.HistoryLimit <= 0 {
		c.REPL.HistoryLimit = 200
	}
	if c.Format.Extension == "" {
		c.Format.Extension = ".marble"
	}
}

func (c *Config) validate() error {
	if !validMode(c.REPL.Mode) {
		return fmt.Errorf("repl.mode must be one of %s, %s, %s; got %q", modeCode, modeTokens, modeAST, c.REPL.Mode)
	}
	return nil
}

func validMode(mode string) bool {
	switch mode {
	case modeCode, modeTokens, modeAST:
		return true
	}
	return false
}

// resolveConfig loads the config named by flagPath, then $MARBLE_CONFIG,
// then the per-user default location. Only an explicitly named file has to
// exist.
func resolveConfig(flagPath string) (*Config, error) {
	if flagPath != "" {
		return Load(flagPath)
	}
	if path := os.Getenv(configEnvVar); path != "" {
		return Load(path)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "marble", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel != "warn" || cfg.REPL.Prompt != ">> " || cfg.REPL.Mode != modeCode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.REPL.HistoryLimit != 200 || cfg.Format.Extension != ".marble" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFillsMissingKeys(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[repl]
mode = "tokens"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.REPL.Mode != modeTokens {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.REPL.Prompt != ">> " || cfg.Format.Extension != ".marble" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.source != path {
		t.Fatalf("expected source %q, got %q", path, cfg.source)
	}
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "[repl]\nmode = \"eval\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "repl.mode") {
		t.Fatalf("expected mode validation error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "log_level = \n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestResolveConfigPrefersEnvironment(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, "[format]\nextension = \".mbl\"\n")
	t.Setenv(configEnvVar, path)

	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Format.Extension != ".mbl" {
		t.Fatalf("expected env config, got %+v", cfg)
	}
}

func TestResolveConfigUsesUserConfigDir(t *testing.T) {
	isolateConfig(t)
	base, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	dir := filepath.Join(base, "marble")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[repl]\nprompt = \"marble> \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.REPL.Prompt != "marble> " {
		t.Fatalf("expected user config, got %+v", cfg)
	}
}

func TestResolveConfigFallsBackToDefaults(t *testing.T) {
	isolateConfig(t)
	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.source != "defaults" {
		t.Fatalf("expected defaults, got source %q", cfg.source)
	}
}

func TestConfigFlagInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level = \"loud\"\n")
	_, _, err := runApp(t, "", "--config", path, "version")
	if err == nil || !strings.Contains(err.Error(), "invalid log_level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

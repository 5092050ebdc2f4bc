package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Session.Strategy != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[session]
list = "fr"
strategy = "min-observed"
positions = [2, 4]
disabled = ["vowels"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	s := cfg.Session
	if s.List == nil || *s.List != "fr" {
		t.Fatalf("list = %v", s.List)
	}
	if s.Strategy == nil || *s.Strategy != "min-observed" {
		t.Fatalf("strategy = %v", s.Strategy)
	}
	if s.Positions == nil || len(*s.Positions) != 2 || (*s.Positions)[1] != 4 {
		t.Fatalf("positions = %v", s.Positions)
	}
	if s.Disabled == nil || len(*s.Disabled) != 1 || (*s.Disabled)[0] != "vowels" {
		t.Fatalf("disabled = %v", s.Disabled)
	}
	if s.ShapeMap != nil {
		t.Fatalf("shape map should be unset, got %q", *s.ShapeMap)
	}
}

func TestLoadConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[session]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != "/cfg/wordsieve/config.toml" {
		t.Fatalf("config path = %q", got)
	}
	if got := DefaultListPath("en"); got != "/cfg/wordsieve/lists/en.txt" {
		t.Fatalf("list path = %q", got)
	}
	if got := DefaultDBPath(); got != "/data/wordsieve/wordsieve.db" {
		t.Fatalf("db path = %q", got)
	}
}

// ABOUTME: Tests for birdlog configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, path expansion, and map fallback location.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2389-research/birdlog/internal/models"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	path, err := cfg.GetJournalPath()
	if err != nil {
		t.Fatalf("GetJournalPath() error: %v", err)
	}
	if want := filepath.Join(dataHome, "birdlog", "birds.json"); path != want {
		t.Errorf("GetJournalPath() = %q, want %q", path, want)
	}
	if cfg.GetListen() != DefaultListen {
		t.Errorf("GetListen() = %q, want %q", cfg.GetListen(), DefaultListen)
	}
	if cfg.GetLogLevel() != "warn" {
		t.Errorf("GetLogLevel() = %q, want warn", cfg.GetLogLevel())
	}
	if cfg.DefaultLocation() != models.DefaultLocation() {
		t.Errorf("DefaultLocation() = %+v, want built-in default", cfg.DefaultLocation())
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "birdlog")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `journal:
  path: "~/birding/birds.json"
map:
  default_lat: 53.35
  default_lng: -6.26
  default_zoom: 11
server:
  listen: "127.0.0.1:9000"
log:
  level: debug
  pretty: true
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if got, err := cfg.GetJournalPath(); err != nil {
		t.Fatalf("GetJournalPath() error: %v", err)
	} else if want := filepath.Join(home, "birding", "birds.json"); got != want {
		t.Errorf("GetJournalPath() = %q, want %q", got, want)
	}

	wantLoc := models.Location{Lat: 53.35, Lng: -6.26, Zoom: 11}
	if cfg.DefaultLocation() != wantLoc {
		t.Errorf("DefaultLocation() = %+v, want %+v", cfg.DefaultLocation(), wantLoc)
	}
	if cfg.GetListen() != "127.0.0.1:9000" {
		t.Errorf("GetListen() = %q", cfg.GetListen())
	}
	if cfg.GetLogLevel() != "debug" || !cfg.Log.Pretty {
		t.Errorf("log config = %+v", cfg.Log)
	}
}

func TestDefaultLocationZoomOnly(t *testing.T) {
	cfg := &Config{Map: MapConfig{DefaultZoom: 8}}
	loc := cfg.DefaultLocation()
	if loc.Lat != models.DefaultLat || loc.Lng != models.DefaultLng {
		t.Errorf("expected built-in coordinate, got %+v", loc)
	}
	if loc.Zoom != 8 {
		t.Errorf("Zoom = %v, want 8", loc.Zoom)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "birdlog")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("journal: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		Journal: JournalConfig{Path: "/srv/birds.json"},
		Server:  ServerConfig{Listen: ":7000"},
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Journal.Path != "/srv/birds.json" {
		t.Errorf("Journal.Path = %q", loaded.Journal.Path)
	}
	if loaded.Server.Listen != ":7000" {
		t.Errorf("Server.Listen = %q", loaded.Server.Listen)
	}

	configPath, _ := GetConfigPath()
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config permissions = %o, want 600", perm)
	}
}

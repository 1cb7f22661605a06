// ABOUTME: Tests for dotted-key config editing.
// ABOUTME: Covers parsing, range checks, resets, and persistence through Save and Load.
package config

import (
	"strings"
	"testing"

	"github.com/2389-research/birdlog/internal/models"
)

func TestSetAndGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"journal.path", "~/birds/field.json", "~/birds/field.json"},
		{"map.default_lat", "51.5", "51.5"},
		{"map.default_lng", " -0.12 ", "-0.12"},
		{"map.default_zoom", "12", "12"},
		{"server.listen", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"log.level", "DEBUG", "debug"},
		{"log.pretty", "true", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"map.default_lat", "north"},
		{"map.default_lat", "91"},
		{"map.default_lng", "-181"},
		{"map.default_zoom", "40"},
		{"log.level", "loud"},
		{"log.pretty", "sometimes"},
		{"colour", "red"},
	}

	for _, tt := range tests {
		cfg := &Config{Map: MapConfig{DefaultLat: 10}}
		if err := cfg.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) expected error", tt.key, tt.value)
		}
		if cfg.Map.DefaultLat != 10 {
			t.Errorf("Set(%q, %q) changed config on error", tt.key, tt.value)
		}
	}
}

func TestSetEmptyResetsToDefault(t *testing.T) {
	cfg := &Config{Map: MapConfig{DefaultZoom: 8}, Server: ServerConfig{Listen: ":1"}}

	if err := cfg.Set("map.default_zoom", ""); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := cfg.Set("server.listen", ""); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if cfg.DefaultLocation().Zoom != models.DefaultZoom {
		t.Errorf("zoom = %v, want built-in default", cfg.DefaultLocation().Zoom)
	}
	if cfg.GetListen() != DefaultListen {
		t.Errorf("listen = %q, want default", cfg.GetListen())
	}
}

func TestGetUnknownKey(t *testing.T) {
	_, err := (&Config{}).Get("nope")
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestSetThenSaveMovesDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	for key, value := range map[string]string{"map.default_lat": "53.35", "map.default_lng": "-6.26"} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := models.Location{Lat: 53.35, Lng: -6.26, Zoom: models.DefaultZoom}
	if got := loaded.DefaultLocation(); got != want {
		t.Errorf("DefaultLocation() = %+v, want %+v", got, want)
	}
}

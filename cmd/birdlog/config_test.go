// ABOUTME: Tests for the config subcommands.
// ABOUTME: Runs set, get, and show against a temp XDG config directory.
package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/2389-research/birdlog/internal/config"
)

func TestConfigSetPersists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	configSetCmd.SetOut(&out)
	if err := runConfigSet(configSetCmd, []string{"map.default_lat", "53.35"}); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if !strings.Contains(out.String(), "map.default_lat = 53.35") {
		t.Errorf("unexpected output: %q", out.String())
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Map.DefaultLat != 53.35 {
		t.Errorf("DefaultLat = %v", cfg.Map.DefaultLat)
	}

	out.Reset()
	configGetCmd.SetOut(&out)
	if err := runConfigGet(configGetCmd, []string{"map.default_lat"}); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "53.35" {
		t.Errorf("get output = %q", out.String())
	}
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := runConfigSet(configSetCmd, []string{"colour", "red"}); err == nil {
		t.Error("expected error for unknown key")
	}
	path, err := config.GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no config file at %s after a rejected set", path)
	}
}

func TestConfigShowUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	var out bytes.Buffer
	configShowCmd.SetOut(&out)
	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("show error: %v", err)
	}
	text := out.String()
	for _, want := range []string{"/data/birdlog/birds.json", "52.245696", config.DefaultListen, "warn"} {
		if !strings.Contains(text, want) {
			t.Errorf("show output missing %q:\n%s", want, text)
		}
	}
}

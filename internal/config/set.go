// ABOUTME: Key-based editing of birdlog configuration for the `config set` command.
// ABOUTME: Parses dotted keys like map.default_lat and validates values before they are saved.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the settable config keys in display order.
var Keys = []string{
	"journal.path",
	"map.default_lat",
	"map.default_lng",
	"map.default_zoom",
	"server.listen",
	"log.level",
	"log.pretty",
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Set assigns value to the dotted key. An empty value resets the key to its default.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "journal.path":
		c.Journal.Path = value
	case "map.default_lat":
		v, err := parseFloatIn(value, -90, 90)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Map.DefaultLat = v
	case "map.default_lng":
		v, err := parseFloatIn(value, -180, 180)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Map.DefaultLng = v
	case "map.default_zoom":
		v, err := parseFloatIn(value, 0, 21)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Map.DefaultZoom = float32(v)
	case "server.listen":
		c.Server.Listen = value
	case "log.level":
		lvl := strings.ToLower(value)
		if lvl != "" && !logLevels[lvl] {
			return fmt.Errorf("%s: unknown level %q (use debug, info, warn, or error)", key, value)
		}
		c.Log.Level = lvl
	case "log.pretty":
		if value == "" {
			c.Log.Pretty = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		c.Log.Pretty = b
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the stored value of the dotted key as text, empty when unset.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "journal.path":
		return c.Journal.Path, nil
	case "map.default_lat":
		return formatFloat(c.Map.DefaultLat), nil
	case "map.default_lng":
		return formatFloat(c.Map.DefaultLng), nil
	case "map.default_zoom":
		return formatFloat(float64(c.Map.DefaultZoom)), nil
	case "server.listen":
		return c.Server.Listen, nil
	case "log.level":
		return c.Log.Level, nil
	case "log.pretty":
		if !c.Log.Pretty {
			return "", nil
		}
		return "true", nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

func parseFloatIn(s string, lo, hi float64) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%v is outside %v..%v", v, lo, hi)
	}
	return v, nil
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

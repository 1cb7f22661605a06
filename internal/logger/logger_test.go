// ABOUTME: Tests for the zap-backed logger wrapper.
// ABOUTME: Verifies level parsing and that structured fields reach the core.
package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"loud", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewBuildsLogger(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l, err := New("debug", pretty)
		if err != nil {
			t.Fatalf("New(pretty=%v) error: %v", pretty, err)
		}
		if l == nil {
			t.Fatal("expected non-nil logger")
		}
	}
}

func TestFieldsReachCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Warn("journal corrupt", String("path", "/tmp/birds.json"), Int("records", 0), Error(errors.New("bad")))
	l.Infof("loaded %d birds", 3)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["path"] != "/tmp/birds.json" {
		t.Errorf("path field = %v", ctx["path"])
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if entries[1].Message != "loaded 3 birds" {
		t.Errorf("message = %q", entries[1].Message)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("ignored")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() error: %v", err)
	}
}

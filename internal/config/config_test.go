package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SampleInterval() != 250*time.Millisecond {
		t.Errorf("expected 250ms sample interval, got %v", cfg.SampleInterval())
	}
}

func TestLoadMissingDefaultFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "sublay", "config.toml")) {
		t.Errorf("unexpected default path %q", path)
	}
	if cfg.Overlay.FontSize != 24 {
		t.Errorf("expected default font size, got %d", cfg.Overlay.FontSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[overlay]
font_size = 30
box_class = "  subs  "

[playback]
sample_interval_ms = 100
speed = 2.0

[native]
off_labels = ["Aus"]
off_substrings = []

[logging]
level = "DEBUG"
`)

	cfg, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resolved != path {
		t.Errorf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Overlay.FontSize != 30 {
		t.Errorf("expected font size 30, got %d", cfg.Overlay.FontSize)
	}
	if cfg.Overlay.FullscreenFontSize != 48 {
		t.Errorf("expected untouched fullscreen size 48, got %d", cfg.Overlay.FullscreenFontSize)
	}
	if cfg.Overlay.BoxClass != "subs" {
		t.Errorf("expected trimmed box class, got %q", cfg.Overlay.BoxClass)
	}
	if cfg.Playback.Speed != 2 {
		t.Errorf("expected speed 2, got %v", cfg.Playback.Speed)
	}
	if len(cfg.Native.OffLabels) != 1 || cfg.Native.OffLabels[0] != "Aus" {
		t.Errorf("expected off labels [Aus], got %v", cfg.Native.OffLabels)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected normalized level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad toml",
			content: "[overlay\nfont_size = 1",
			wantErr: "parse config",
		},
		{
			name:    "negative font size",
			content: "[overlay]\nfont_size = -1",
			wantErr: "overlay.font_size",
		},
		{
			name:    "zero interval",
			content: "[playback]\nsample_interval_ms = 0",
			wantErr: "sample_interval_ms",
		},
		{
			name:    "unknown level",
			content: "[logging]\nlevel = \"chatty\"",
			wantErr: "logging.level",
		},
		{
			name:    "no off labels",
			content: "[native]\noff_labels = []\noff_substrings = []",
			wantErr: "off label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Overlay contains display settings for the subtitle overlay.
type Overlay struct {
	FontSize           int    `toml:"font_size"`
	FullscreenFontSize int    `toml:"fullscreen_font_size"`
	BottomPercent      int    `toml:"bottom_percent"`
	BoxClass           string `toml:"box_class"`
}

// Playback contains settings for the simulated playback clock.
type Playback struct {
	SampleIntervalMS int     `toml:"sample_interval_ms"`
	Speed            float64 `toml:"speed"`
}

// Native describes how the host's caption menu is recognised.
type Native struct {
	OffLabels     []string `toml:"off_labels"`
	OffSubstrings []string `toml:"off_substrings"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for sublay.
type Config struct {
	Overlay  Overlay  `toml:"overlay"`
	Playback Playback `toml:"playback"`
	Native   Native   `toml:"native"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Overlay: Overlay{
			FontSize:           24,
			FullscreenFontSize: 48,
			BottomPercent:      8,
			BoxClass:           "caption-box",
		},
		Playback: Playback{
			SampleIntervalMS: 250,
			Speed:            1,
		},
		Native: Native{
			OffLabels:     []string{"Off"},
			OffSubstrings: []string{"关闭", "關閉"},
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sublay/config.toml")
}

// Load reads the configuration at path, or the default location when path
// is empty. A missing default file yields the defaults; a missing explicit
// file is an error.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolved, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", expanded, err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

func (c *Config) normalize() {
	c.Overlay.BoxClass = strings.TrimSpace(c.Overlay.BoxClass)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Playback.Speed == 0 {
		c.Playback.Speed = 1
	}
	if c.Overlay.FullscreenFontSize == 0 {
		c.Overlay.FullscreenFontSize = c.Overlay.FontSize
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Overlay.FontSize <= 0 {
		return fmt.Errorf("overlay.font_size must be positive, got %d", c.Overlay.FontSize)
	}
	if c.Overlay.FullscreenFontSize <= 0 {
		return fmt.Errorf("overlay.fullscreen_font_size must be positive, got %d", c.Overlay.FullscreenFontSize)
	}
	if c.Overlay.BottomPercent < 0 || c.Overlay.BottomPercent > 100 {
		return fmt.Errorf("overlay.bottom_percent must be within 0-100, got %d", c.Overlay.BottomPercent)
	}
	if c.Playback.SampleIntervalMS <= 0 {
		return fmt.Errorf("playback.sample_interval_ms must be positive, got %d", c.Playback.SampleIntervalMS)
	}
	if c.Playback.Speed < 0 {
		return fmt.Errorf("playback.speed must not be negative, got %v", c.Playback.Speed)
	}
	if len(c.Native.OffLabels) == 0 && len(c.Native.OffSubstrings) == 0 {
		return errors.New("native: at least one off label or substring is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// SampleInterval returns the playback sampling period.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.Playback.SampleIntervalMS) * time.Millisecond
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

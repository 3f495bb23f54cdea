// Package config loads the demo's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/teaview"
)

// Config is the root configuration structure.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	View   ViewConfig   `toml:"view"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig holds session settings. Durations are milliseconds; zero
// keeps the session default.
type EditorConfig struct {
	TabWidth           int `toml:"tab_width"`
	TooltipDelayMS     int `toml:"tooltip_delay_ms"`
	TooltipDriftMS     int `toml:"tooltip_drift_ms"`
	TooltipHideDelayMS int `toml:"tooltip_hide_delay_ms"`
	AutoscrollMS       int `toml:"autoscroll_interval_ms"`
	// BlinkIntervalMS disables blinking when negative.
	BlinkIntervalMS int `toml:"blink_interval_ms"`
}

// ViewConfig holds terminal host settings.
type ViewConfig struct {
	LineNumbers  bool   `toml:"line_numbers"`
	ReadOnly     bool   `toml:"read_only"`
	ScrollPolicy string `toml:"scroll_policy"` // "manual" or "follow_caret"
	CaretShape   string `toml:"caret_shape"`   // "bar", "block" or "underscore"
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		View: ViewConfig{LineNumbers: true, ScrollPolicy: "manual", CaretShape: "block"},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. An empty path yields Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.TabWidth < 0 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("editor.tab_width=%d must be between 0 and 16", c.Editor.TabWidth))
	}
	for _, d := range []struct {
		name string
		ms   int
	}{
		{"editor.tooltip_delay_ms", c.Editor.TooltipDelayMS},
		{"editor.tooltip_drift_ms", c.Editor.TooltipDriftMS},
		{"editor.tooltip_hide_delay_ms", c.Editor.TooltipHideDelayMS},
		{"editor.autoscroll_interval_ms", c.Editor.AutoscrollMS},
	} {
		if d.ms < 0 {
			errs = append(errs, fmt.Errorf("%s=%d must not be negative", d.name, d.ms))
		}
	}

	if _, err := c.View.scrollPolicy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.View.caretShape(); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SessionConfig maps the file settings onto a session configuration.
func (c *Config) SessionConfig() editor.Config {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return editor.Config{
		TabWidth:           c.Editor.TabWidth,
		TooltipDelay:       ms(c.Editor.TooltipDelayMS),
		TooltipDrift:       ms(c.Editor.TooltipDriftMS),
		TooltipHideDelay:   ms(c.Editor.TooltipHideDelayMS),
		AutoscrollInterval: ms(c.Editor.AutoscrollMS),
		BlinkInterval:      ms(c.Editor.BlinkIntervalMS),
	}
}

// ScrollPolicy returns the configured wheel policy. Call after Validate.
func (v ViewConfig) ScrollPolicy() teaview.ScrollPolicy {
	p, _ := v.scrollPolicy()
	return p
}

// CaretShape returns the configured caret shape. Call after Validate.
func (v ViewConfig) CaretShape() editor.CaretShape {
	s, _ := v.caretShape()
	return s
}

// LogLevel returns the configured log level. Call after Validate.
func (l LogConfig) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (v ViewConfig) scrollPolicy() (teaview.ScrollPolicy, error) {
	switch v.ScrollPolicy {
	case "", "manual":
		return teaview.ScrollAllowManual, nil
	case "follow_caret":
		return teaview.ScrollFollowCaretOnly, nil
	}
	return 0, fmt.Errorf("view.scroll_policy=%q must be manual or follow_caret", v.ScrollPolicy)
}

func (v ViewConfig) caretShape() (editor.CaretShape, error) {
	switch v.CaretShape {
	case "", "bar":
		return editor.CaretBar, nil
	case "block":
		return editor.CaretBlock, nil
	case "underscore":
		return editor.CaretUnderscore, nil
	}
	return 0, fmt.Errorf("view.caret_shape=%q must be bar, block or underscore", v.CaretShape)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"QUILL_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"QUILL_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

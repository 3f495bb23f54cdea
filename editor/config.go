package editor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/quill/sched"
)

const (
	DefaultTooltipDelay       = 650 * time.Millisecond
	DefaultTooltipDrift       = 50 * time.Millisecond
	DefaultTooltipHideDelay   = 300 * time.Millisecond
	DefaultAutoscrollInterval = 50 * time.Millisecond
	DefaultBlinkInterval      = 530 * time.Millisecond
)

// Config configures a Session. Zero values select defaults.
type Config struct {
	// RowHeight is the uniform line height in pixels. Terminal hosts use 1.
	RowHeight int
	// CharWidth is the width of one cell in pixels. Terminal hosts use 1.
	CharWidth int
	TabWidth  int
	// LeftMargin is the width of the gutter drawn left of the text.
	LeftMargin int

	TooltipDelay     time.Duration
	TooltipDrift     time.Duration
	TooltipHideDelay time.Duration

	AutoscrollInterval time.Duration
	// BlinkInterval is the caret blink half-period. Negative disables
	// blinking.
	BlinkInterval time.Duration

	// Metrics overrides the built-in monospace cell metrics.
	Metrics GlyphMetrics
	// Scheduler delivers timer callbacks. When nil, a sched.Manual clock is
	// used and nothing fires until the host advances it.
	Scheduler sched.Scheduler
	Logger    *zerolog.Logger
}

func normalizeConfig(cfg Config) Config {
	if cfg.Metrics != nil {
		if cfg.RowHeight <= 0 {
			cfg.RowHeight = cfg.Metrics.LineHeight()
		}
		if cfg.CharWidth <= 0 {
			cfg.CharWidth = cfg.Metrics.CharWidth()
		}
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 1
	}
	if cfg.CharWidth <= 0 {
		cfg.CharWidth = 1
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if cfg.LeftMargin < 0 {
		cfg.LeftMargin = 0
	}
	if cfg.TooltipDelay <= 0 {
		cfg.TooltipDelay = DefaultTooltipDelay
	}
	if cfg.TooltipDrift <= 0 {
		cfg.TooltipDrift = DefaultTooltipDrift
	}
	if cfg.TooltipHideDelay <= 0 {
		cfg.TooltipHideDelay = DefaultTooltipHideDelay
	}
	if cfg.AutoscrollInterval <= 0 {
		cfg.AutoscrollInterval = DefaultAutoscrollInterval
	}
	if cfg.BlinkInterval == 0 {
		cfg.BlinkInterval = DefaultBlinkInterval
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = sched.NewManual(time.Now())
	}
	return cfg
}

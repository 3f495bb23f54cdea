package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/teaview"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quill.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.True(t, cfg.View.LineNumbers)
	require.Equal(t, teaview.ScrollAllowManual, cfg.View.ScrollPolicy())
	require.Equal(t, editor.CaretBlock, cfg.View.CaretShape())
	require.Equal(t, zerolog.InfoLevel, cfg.Log.LogLevel())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8
tooltip_delay_ms = 200
blink_interval_ms = -1

[view]
line_numbers = false
scroll_policy = "follow_caret"
caret_shape = "underscore"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.View.LineNumbers)
	require.Equal(t, teaview.ScrollFollowCaretOnly, cfg.View.ScrollPolicy())
	require.Equal(t, editor.CaretUnderscore, cfg.View.CaretShape())
	require.Equal(t, zerolog.DebugLevel, cfg.Log.LogLevel())

	sc := cfg.SessionConfig()
	require.Equal(t, 8, sc.TabWidth)
	require.Equal(t, 200*time.Millisecond, sc.TooltipDelay)
	require.Equal(t, -time.Millisecond, sc.BlinkInterval)
	require.Zero(t, sc.TooltipDrift)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorContains(t, err, "config file not found")
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[editor\n"))
	require.ErrorContains(t, err, "failed to parse config")
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Editor.TabWidth = 40
	cfg.Editor.TooltipDelayMS = -5
	cfg.View.ScrollPolicy = "sideways"
	cfg.View.CaretShape = "heart"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"editor.tab_width=40",
		"editor.tooltip_delay_ms=-5",
		`view.scroll_policy="sideways"`,
		`view.caret_shape="heart"`,
		`log.level="loud"`,
	} {
		require.ErrorContains(t, err, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUILL_LOG_LEVEL", "warn")
	t.Setenv("QUILL_LOG_FILE", "/tmp/quill.log")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, cfg.Log.LogLevel())
	require.Equal(t, "/tmp/quill.log", cfg.Log.File)
}

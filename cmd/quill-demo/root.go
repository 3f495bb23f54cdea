package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/quill"
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/internal/config"
)

func init() {
	// Query the terminal background before the program owns stdin so the
	// OSC 11 reply does not land in the editor as typed text.
	_ = lipgloss.HasDarkBackground()
}

var (
	cfgFile    string
	byteOffset int
	readOnly   bool
	autoFold   bool
)

var rootCmd = &cobra.Command{
	Use:     "quill-demo [file]",
	Short:   "Edit a file in the quill terminal editor",
	Args:    cobra.MaximumNArgs(1),
	Version: quill.BuildVersion(),
	RunE:    runDemo,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")
	rootCmd.Flags().IntVar(&byteOffset, "offset", 0, "initial caret position as a UTF-8 byte offset")
	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "open the file read-only")
	rootCmd.Flags().BoolVar(&autoFold, "fold", false, "add a fold for every multi-line brace block")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if readOnly {
		cfg.View.ReadOnly = true
	}

	logger, closeLog, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	path, text := "", sampleText
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text = string(data)
	}

	buf := buffer.New(text, buffer.Options{})
	if autoFold {
		n := addBraceFolds(buf)
		logger.Debug().Int("folds", n).Msg("brace folds")
	}
	markNotes(buf)

	app := newApp(buf, path, cfg, termenv.ColorProfile(), &logger)
	if cmd.Flags().Changed("offset") {
		if err := app.moveToByteOffset(byteOffset); err != nil {
			return err
		}
	}
	defer app.editor.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openLog writes logs to the configured file. Without one, logs are
// discarded since the terminal belongs to the editor.
func openLog(c config.LogConfig) (zerolog.Logger, func(), error) {
	if c.File == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := zerolog.New(f).Level(c.LogLevel()).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

const sampleText = `Welcome to quill.

func greet(name string) {
	if name == "" {
		name = "world" // NOTE: lines with NOTE get a spacer row
	}
	fmt.Println("hello", name)
}

Hover a word for a tooltip. Drag a selection to move it; hold ctrl to copy.
Alt+drag selects a block. Ctrl+F toggles the fold under the caret.
Ctrl+S saves, Ctrl+Q quits.`

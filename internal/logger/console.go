// Package logger provides the colored console output used by the CLI: a
// rich slog handler for the terminal, an optional plain log-file sink, and
// the progress/summary reporter.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Options configures console output.
type Options struct {
	Output       io.Writer
	Level        slog.Level
	TimeFormat   string
	EnableColors bool
	LogFile      string // Optional plain-text sink, no ANSI codes.
}

// DefaultOptions returns terminal-oriented defaults: colors when stdout is a
// TTY and NO_COLOR is unset, info level, short timestamps.
func DefaultOptions() *Options {
	return &Options{
		Output:       os.Stdout,
		Level:        slog.LevelInfo,
		TimeFormat:   "15:04:05",
		EnableColors: isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "",
	}
}

// Console wraps a slog.Logger with leveled, colorized convenience methods
// and an optional file sink that receives the same lines without colors.
type Console struct {
	Logger    *slog.Logger
	Colorized bool

	out io.Writer

	mu   sync.Mutex
	file *os.File
}

// NewConsole builds a Console from opts, opening the log file when one is
// configured. Call Close when done if LogFile was set.
func NewConsole(opts *Options) (*Console, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	c := &Console{
		Logger:    slog.New(NewRichHandler(opts)),
		Colorized: opts.EnableColors,
		out:       opts.Output,
	}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		c.file = f
	}

	return c, nil
}

// Close closes the log file if one was opened.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file != nil {
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

func (c *Console) emit(level slog.Level, plain, colored string) {
	msg := plain
	if c.Colorized {
		msg = colored
	}
	c.Logger.Log(context.Background(), level, msg)
	c.tee(level, plain)
}

// tee appends the plain line to the log file sink.
func (c *Console) tee(level slog.Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(c.file, "%s [%s] %s\n", ts, level.String(), msg)
}

// Success logs a green checkmarked line at info level.
func (c *Console) Success(format string, args ...any) {
	msg := "✓ " + fmt.Sprintf(format, args...)
	c.emit(slog.LevelInfo, msg, Green+Bold+msg+Reset)
}

// Info logs a blue informational line.
func (c *Console) Info(format string, args ...any) {
	msg := "ℹ " + fmt.Sprintf(format, args...)
	c.emit(slog.LevelInfo, msg, Blue+Bold+msg+Reset)
}

// Log logs an unadorned line at info level.
func (c *Console) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.emit(slog.LevelInfo, msg, White+msg+Reset)
}

// Warn logs a yellow warning line.
func (c *Console) Warn(format string, args ...any) {
	msg := "⚠ " + fmt.Sprintf(format, args...)
	c.emit(slog.LevelWarn, msg, Yellow+Bold+msg+Reset)
}

// Error logs a red error line.
func (c *Console) Error(format string, args ...any) {
	msg := "✖ " + fmt.Sprintf(format, args...)
	c.emit(slog.LevelError, msg, Red+Bold+msg+Reset)
}

// Debug logs a cyan line visible only at debug level.
func (c *Console) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.emit(slog.LevelDebug, msg, Cyan+msg+Reset)
}

// Pass logs a per-file success progress line, green without the Success
// prefix so the caller controls the line layout.
func (c *Console) Pass(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.emit(slog.LevelInfo, msg, Green+msg+Reset)
}

// Fail logs a per-file failure progress line in red at warn level.
func (c *Console) Fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.emit(slog.LevelWarn, msg, Red+msg+Reset)
}

// StartTimer returns a running timer that reports through this console.
func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

// NewTable returns a bordered table that renders to this console's output.
func (c *Console) NewTable(headers []string) *Table {
	return NewTable(headers, c.out)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ANSI escape codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
)

// RichHandler is a slog.Handler that renders timestamped, colorized,
// human-oriented lines rather than key=value records.
type RichHandler struct {
	opts  *Options
	mu    sync.Mutex
	attrs []slog.Attr
}

// NewRichHandler builds a handler from opts.
func NewRichHandler(opts *Options) *RichHandler {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &RichHandler{opts: opts}
}

func (h *RichHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *RichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := &RichHandler{opts: h.opts}
	h2.attrs = append(append(h2.attrs, h.attrs...), attrs...)
	return h2
}

func (h *RichHandler) WithGroup(string) slog.Handler {
	// Groups are not rendered; lines stay flat.
	return h
}

func (h *RichHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	colors := h.opts.EnableColors
	levelColor := ""
	if colors {
		switch record.Level {
		case slog.LevelDebug:
			levelColor = Cyan
		case slog.LevelInfo:
			levelColor = Green
		case slog.LevelWarn:
			levelColor = Yellow
		case slog.LevelError:
			levelColor = Red
		}
	}

	var b strings.Builder

	if h.opts.TimeFormat != "" {
		if colors {
			b.WriteString(Blue)
		}
		b.WriteString(record.Time.Format(h.opts.TimeFormat))
		if colors {
			b.WriteString(Reset)
		}
		b.WriteString(" ")
	}

	if colors {
		b.WriteString(levelColor)
		b.WriteString(Bold)
	}
	fmt.Fprintf(&b, "%-5s", strings.ToUpper(record.Level.String()))
	if colors {
		b.WriteString(Reset)
	}
	b.WriteString(" ")

	b.WriteString(record.Message)

	appendAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	record.Attrs(appendAttr)

	_, err := fmt.Fprintln(h.opts.Output, b.String())
	return err
}

// Package log provides helpers for creating a configured slog.Logger.
//
// Without a log file, records below error level go to stdout and errors to
// stderr. With a log file every record goes to the file and only errors reach
// the terminal, which keeps the console clean while it is owned for input.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace defines a custom slog level below Debug for per-read output.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the logging section of the command line.
type Config struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"VTINPUT_LOG_LEVEL"`
	File    string `help:"Log file path; the terminal then only receives errors" env:"VTINPUT_LOG_FILE"`
	RawFile string `help:"Hex dump of console reads and session deliveries" env:"VTINPUT_LOG_RAW_FILE"`
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r)
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes records to h only when pass accepts their level.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

func below(l slog.Level) func(slog.Level) bool   { return func(x slog.Level) bool { return x < l } }
func atLeast(l slog.Level) func(slog.Level) bool { return func(x slog.Level) bool { return x >= l } }

// NewHandler builds the handler tree writing to stdout/stderr and, when
// file is non-nil, to file.
func NewHandler(level slog.Level, stdout, stderr, file io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	var hs []slog.Handler
	if file == nil {
		hs = append(hs,
			LevelFilter{pass: below(slog.LevelError), h: slog.NewTextHandler(stdout, opts)},
			LevelFilter{pass: atLeast(slog.LevelError), h: slog.NewTextHandler(stderr, opts)},
		)
	} else {
		hs = append(hs,
			LevelFilter{pass: atLeast(slog.LevelError), h: slog.NewTextHandler(stderr, opts)},
			slog.NewTextHandler(file, opts),
		)
	}
	return MultiHandler{hs: hs}
}

// SetupLogger builds a slog.Logger for cfg. The returned closers own any
// opened files.
func SetupLogger(cfg Config) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(cfg.Level)
	var closeFiles []io.Closer
	var file io.Writer
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeFiles = append(closeFiles, f)
		file = f
	}
	return slog.New(NewHandler(level, os.Stdout, os.Stderr, file)), closeFiles, nil
}

// Package logging defines the structured, context-aware logger used across
// gophchat and its two backends: log/slog and go.uber.org/zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs:
//
//	log.Info(ctx, "conversation loaded", "chat_id", id, "messages", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

const (
	BackendSlog = "slog"
	BackendZap  = "zap"

	FormatText = "text"
	FormatJSON = "json"
)

// Options selects and tunes a backend.
type Options struct {
	Backend string
	Level   string
	Format  string
	Output  io.Writer
}

// New builds a Logger from opts. An empty backend means slog.
func New(opts Options) (Logger, error) {
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		return NewSlogLogger(newSlog(opts)), nil
	case BackendZap:
		l, err := newZap(opts)
		if err != nil {
			return nil, err
		}
		return NewZapLogger(l), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func newSlog(opts Options) *slog.Logger {
	ho := &slog.HandlerOptions{Level: slogLevel(opts.Level)}
	if strings.EqualFold(opts.Format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(opts.Output, ho))
	}
	return slog.New(slog.NewTextHandler(opts.Output, ho))
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Nop returns a logger that drops everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/besok/rastro/internal/conf"
)

// DefaultFileName is used when log_file_path is empty.
const DefaultFileName = "astropy.log"

// Logger is a slog.Logger that may hold a log file open.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a logger writing to w at log_level. When log_to_file is set the
// log file is opened for appending; an empty log_file_path resolves to
// DefaultFileName inside the rastro config directory.
func New(cfg *conf.Logger, w io.Writer) (*Logger, error) {
	console := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel.Get()),
	})
	if !cfg.LogToFile.Get() {
		return &Logger{Logger: slog.New(console)}, nil
	}

	path, err := filePath(cfg.LogFilePath.Get())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogFileLevel.Get()),
	})

	return &Logger{
		Logger: slog.New(fanout{console, file}),
		file:   f,
	}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func filePath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := conf.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// ParseLevel maps a level name to a slog.Level; unknown names mean INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to every handler enabled for its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"pkt.systems/termview/internal/view"
)

type contextKey int

const fileKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// Options returns structured logger options for the named level.
func Options(level string) (pslog.Options, error) {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return pslog.Options{}, fmt.Errorf("unsupported log level %q", level)
	}
	return opts, nil
}

// Open returns the session logger. The screen belongs to the viewer while it
// runs, so logs go to path (appended) or are discarded when path is empty.
// The returned closer is never nil.
func Open(path, level string) (pslog.Logger, io.Closer, error) {
	opts, err := Options(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return pslog.NewWithOptions(io.Discard, opts), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return pslog.NewWithOptions(f, opts), f, nil
}

// WithFile annotates the logger with the viewed file if present.
func WithFile(ctx context.Context, path string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if path == "" {
		return log
	}
	if current, ok := ctx.Value(fileKey).(string); ok && current == path {
		return log
	}
	return log.With("file", path)
}

// WithSize annotates the logger with the screen dimensions.
func WithSize(log pslog.Logger, d view.Dimensions) pslog.Logger {
	if !d.Valid() {
		return log
	}
	return log.With("rows", d.Rows, "cols", d.Cols)
}

// ContextWithFile stores the file marker on the context for log de-duplication.
func ContextWithFile(ctx context.Context, path string) context.Context {
	if ctx == nil || path == "" {
		return ctx
	}
	return context.WithValue(ctx, fileKey, path)
}

// ContextWithFileLogger attaches the logger and file marker to the context.
func ContextWithFileLogger(ctx context.Context, log pslog.Logger, path string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithFile(ctx, path)
}

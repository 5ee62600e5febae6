// Package log is celina's thin structured-logging wrapper. Every soft-fail
// path named in spec.md §7 (hex parse fallback, ioctl fallback, cleanup
// swallow) logs through here instead of vanishing silently, generalizing
// the teacher's ad hoc fmt.Fprintf(os.Stderr, ...) warnings into
// structured lines.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// SetOutput redirects all logging, primarily so tests can silence it with
// io.Discard.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, nil))
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Warn logs a recoverable soft-fail: a default was substituted and the
// caller is proceeding.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a failure the caller is propagating (not swallowing).
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Debug logs low-level tracing, off by default at slog's default level.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Silence redirects logging to io.Discard. Convenience for tests.
func Silence() {
	SetOutput(io.Discard)
}

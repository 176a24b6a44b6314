package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var (
	stdMu sync.RWMutex
	std   = Make(os.Stderr)
)

// Default returns the package-level logger.
func Default() Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()

	return std
}

// Config reconfigures the package-level logger.
func Config(opts ...Option) {
	stdMu.Lock()
	defer stdMu.Unlock()

	std = std.Wrap(opts...)
}

// DebugContext logs a message at Debug level on the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelDebug, msg, attrs...)
}

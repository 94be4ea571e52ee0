package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKey carries the logger attached by an entry point.
type loggerKey struct{}

// FromContext returns the logger attached with WithLogger. Style loading,
// conversion and file I/O never build their own logger; they log through
// the one their caller put on ctx, or the package default when there is none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx for the library calls made with it.
// A nil logger leaves ctx unchanged.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

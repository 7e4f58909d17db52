package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init initializes the global logger based on environment
// Development: Text format with Debug level
// Production: JSON format with Info level
// Optionally sends errors to Sentry for error tracking.
// The returned func flushes buffered Sentry events and should run before exit.
func Init(isDev bool, sentryDSN string) (flush func()) {
	flush = func() {}

	var extra []slog.Handler
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			extra = append(extra, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	slog.SetDefault(New(os.Stdout, isDev, extra...))
	return flush
}

// New builds a logger writing to w, fanning out to any extra handlers.
func New(w io.Writer, isDev bool, extra ...slog.Handler) *slog.Logger {
	var base slog.Handler
	if isDev {
		base = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	// Use multi-handler if we have multiple, otherwise use single
	if len(extra) == 0 {
		return slog.New(base)
	}
	return slog.New(slogmulti.Fanout(append([]slog.Handler{base}, extra...)...))
}

package observability

import (
	"io"
	"log/slog"

	"github.com/greenh2/site-optimizer/internal/config"
)

// NewLogger builds the service logger from config: JSON (default) or text
// handler at the configured level, writing to w. The server logs to stdout;
// CLI commands pass stderr so their stdout stays clean for piped output.
// Unknown levels fall back to info so a typo'd LOG_LEVEL never silences the
// service.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return newLogger(w, cfg.LogLevel, cfg.LogFormat)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

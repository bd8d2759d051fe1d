package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger. An explicit LOG_FORMAT wins;
// without one, production emits JSON for the log pipeline and development
// keeps the readable text handler.
func NewLogger(cfg *Config) *slog.Logger {
	format := ""
	if cfg != nil {
		format = cfg.LogFormat
	}
	if format == "" && cfg.IsProduction() {
		format = "json"
	}

	opts := &slog.HandlerOptions{AddSource: true}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

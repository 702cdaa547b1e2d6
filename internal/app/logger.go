package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the configured slog.Logger. Development runs log at
// debug with source locations; production runs keep info and above.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}
	if cfg != nil && cfg.IsProduction() {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

package main

import (
	"log/slog"
	"os"
	"strings"
)

// logLevels maps the accepted logging.level names to slog levels.
// Config.Validate rejects anything not listed here.
var logLevels = map[string]slog.Level{
	"error":   slog.LevelError,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"info":    slog.LevelInfo,
	"debug":   slog.LevelDebug,
}

// newLogger builds the daemon's text logger on stdout. The level string
// has already passed validation; an unknown one falls back to info.
func newLogger(level string) *slog.Logger {
	l, ok := logLevels[strings.ToLower(level)]
	if !ok {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

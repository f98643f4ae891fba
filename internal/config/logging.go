package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger builds the process logger from cfg. Text goes to stderr; when
// cfg.LogFile is set, JSON records are fanned out to that file as well.
// The returned cleanup closes the file, if any.
func SetupLogger(cfg Config) (*slog.Logger, func() error) {
	noop := func() error { return nil }

	if cfg.LogFile == "" {
		return SetupLoggerWithWriters(os.Stderr, nil, cfg.LogLevel), noop
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger := SetupLoggerWithWriters(os.Stderr, nil, cfg.LogLevel)
		logger.Warn("log file unavailable, logging to stderr only", "error", err, "file", cfg.LogFile)
		return logger, noop
	}

	return SetupLoggerWithWriters(os.Stderr, file, cfg.LogLevel), file.Close
}

// SetupLoggerWithWriters creates a logger over explicit writers. A nil file
// writer disables the JSON output.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	console := slog.NewTextHandler(stderr, opts)

	var handler slog.Handler = console
	if file != nil {
		handler = slogmulti.Fanout(console, slog.NewJSONHandler(file, opts))
	}

	return slog.New(handler).With("app", "mortydex")
}

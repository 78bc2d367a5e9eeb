// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the rotating diagnostic log file. Progress
// output for users goes to stdout; the log file records warnings and batch
// summaries for later inspection.
package logging

import (
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/notebook-engine/pkg/types"
)

const defaultLogPath = "notebook-engine.log"

// Setup builds a slog logger writing to a size-rotated file and installs it
// as the process default.
func Setup(cfg types.LogConfig) *slog.Logger {
	path := cfg.Path
	if path == "" {
		path = defaultLogPath
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(cfg.MaxSizeMB, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 30),
		Compress:   cfg.Compress,
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

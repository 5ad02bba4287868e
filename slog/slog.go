// Package slog decorates pagedigest services with structured logging.
// Successful calls are logged at debug level and failures at warn level.
package slog

import (
	"context"
	"log/slog"
)

// log writes msg at debug level, or at warn level when err is non-nil.
func log(logger *slog.Logger, msg string, err error, args ...any) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
		args = append(args, "err", err)
	}
	logger.Log(context.Background(), level, msg, args...)
}

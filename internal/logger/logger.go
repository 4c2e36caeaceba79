// Package logger is the process-wide structured logger used by the
// morphstats application.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	levelVar   slog.LevelVar
	loggerMu   sync.RWMutex
	baseLogger *slog.Logger
)

func init() {
	levelVar.Set(slog.LevelInfo)
	baseLogger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar})
	return slog.New(handler)
}

// SetOutput redirects log output to w; nil restores stderr.
func SetOutput(w io.Writer) {
	loggerMu.Lock()
	baseLogger = newLogger(w)
	loggerMu.Unlock()
}

// SetLevel sets the minimum level by name. Unknown names select info.
func SetLevel(level string) {
	levelVar.Set(ParseLevel(level))
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Logger returns the current logger, for callers that want structured
// attributes.
func Logger() *slog.Logger {
	loggerMu.RLock()
	l := baseLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if baseLogger == nil {
		baseLogger = newLogger(os.Stderr)
	}
	return baseLogger
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, v ...any) {
	Logger().Debug(fmt.Sprintf(format, v...))
}

// Infof logs a formatted message at info level.
func Infof(format string, v ...any) {
	Logger().Info(fmt.Sprintf(format, v...))
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, v ...any) {
	Logger().Warn(fmt.Sprintf(format, v...))
}

// Errorf logs a formatted message at error level.
func Errorf(format string, v ...any) {
	Logger().Error(fmt.Sprintf(format, v...))
}

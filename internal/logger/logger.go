package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// NewLogger builds the process-wide slog logger. Format is one of
// "json", "text" or "tint".
func NewLogger(logLevel, logFormat string) (*slog.Logger, error) {
	return newLogger(logLevel, logFormat, os.Stdout)
}

func newLogger(logLevel, logFormat string, out io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch logFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), nil
	case "text":
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
	case "tint":
		return slog.New(tint.NewHandler(out, &tint.Options{Level: level})), nil
	}

	return nil, errors.Join(ErrInvalidLogFormat, fmt.Errorf("log format: %s", logFormat))
}

func parseLevel(logLevel string) (slog.Level, error) {
	switch logLevel {
	case "TRACE":
		return slog.LevelDebug - 4, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, errors.Join(ErrInvalidLogLevel, fmt.Errorf("log level: %s", logLevel))
}

// Package logger builds the zerolog logger used by the statarb CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config describes how New builds a logger.
type Config struct {
	Level      string // trace, debug, info, warn, error, fatal, panic, disabled
	Format     string // json or console
	Output     string // stdout, stderr, or file path
	TimeFormat string // time format for log messages
}

// Logger is a zerolog.Logger that owns its output file, if any.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// New builds a logger from cfg. A nil cfg logs info and above to stderr in
// console format.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "console", Output: "stderr"}
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	var output io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		output = file
		closer = file
	}

	return &Logger{Logger: build(output, level, cfg.Format, cfg.TimeFormat), closer: closer}, nil
}

// NewWriter builds a logger on an arbitrary writer, for tests and embedding.
func NewWriter(w io.Writer, level zerolog.Level, format string) *Logger {
	return &Logger{Logger: build(w, level, format, "")}
}

func build(w io.Writer, level zerolog.Level, format, timeFormat string) zerolog.Logger {
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: timeFormat,
			NoColor:    w != os.Stderr && w != os.Stdout,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Close releases the log file opened by New.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

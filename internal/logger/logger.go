// Package logger builds the application logger. Development gets a
// colorized console handler, production gets JSON, and an optional
// rotating file sink can be multiplexed in.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BF667/bfrvc/internal/env"
)

type options struct {
	logToFile bool
	logFile   string
	level     slog.Leveler
	output    io.Writer
}

// Option configures the logger.
type Option func(*options)

// WithLogToFile enables the rotating file sink.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the file the rotating sink writes to.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithOutput overrides the console writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// New creates a logger for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := options{
		logFile: "logs/bfrvc.log",
		level:   slog.LevelInfo,
		output:  os.Stderr,
	}
	for _, fn := range opts {
		fn(&o)
	}

	out := o.output
	if o.logToFile {
		out = io.MultiWriter(o.output, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	var handler slog.Handler
	switch environment {
	case env.Production:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: o.level})
	default:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
			NoColor:    o.logToFile,
		})
	}

	return slog.New(handler)
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Path       string
	Level      string
	Format     string // json or console
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger wraps zerolog, writing to a rotated file when a path is
// configured and to stdout otherwise.
type Logger struct {
	zl zerolog.Logger
}

var (
	global *Logger
	once   sync.Once
)

// Init initializes the global logger. Subsequent calls are no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = New(cfg)
	})
	return err
}

// Get returns the global logger, falling back to a plain stdout logger
// when Init was never called.
func Get() *Logger {
	if global == nil {
		global = &Logger{zl: zerolog.New(os.Stdout).With().Timestamp().Logger()}
	}
	return global
}

// New creates a logger instance from cfg.
func New(cfg Config) (*Logger, error) {
	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
	return &Logger{zl: zl}, nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}

// WithComponent returns a logger tagged with a component field.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Debug logs a debug message with key-value fields.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

// Info logs an info message with key-value fields.
func (l *Logger) Info(msg string, fields ...interface{}) {
	emit(l.zl.Info(), msg, fields)
}

// Warn logs a warning message with key-value fields.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

// Error logs an error with key-value fields.
func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	emit(l.zl.Error().Err(err), msg, fields)
}

// Fatal logs an error with key-value fields and exits.
func (l *Logger) Fatal(msg string, err error, fields ...interface{}) {
	emit(l.zl.Fatal().Err(err), msg, fields)
}

// emit attaches key-value pairs to the event. A trailing key without a
// value, or a non-string key, is logged under a catch-all field rather
// than dropped.
func emit(event *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			event.Interface("extra", fields[i:])
			break
		}
		event.Interface(key, fields[i+1])
	}
	if len(fields)%2 != 0 {
		event.Interface("extra", fields[len(fields)-1])
	}
	event.Msg(msg)
}

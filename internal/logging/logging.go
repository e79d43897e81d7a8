// Package logging builds the zap loggers used by the service.
//
// Three sinks are written, each to its own rotating file under the log
// directory: app.log for the application logger, api.log for the request
// logger and errors.log for anything at error level or above.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger names.
const (
	AppName      = "app"
	RequestsName = "api.requests"
)

// Config controls where and how much is logged.
type Config struct {
	Level   string
	Dir     string
	Console bool
	// Rotation limits; zero keeps the lumberjack defaults.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Loggers groups the named loggers handed to the rest of the service.
type Loggers struct {
	App      *zap.Logger
	Requests *zap.Logger

	files []*lumberjack.Logger
}

// NewNop returns loggers that discard everything.
func NewNop() *Loggers {
	return &Loggers{App: zap.NewNop(), Requests: zap.NewNop()}
}

// New builds the loggers described by cfg, creating cfg.Dir if needed.
func New(cfg Config) (*Loggers, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	l := &Loggers{}
	var appCores, requestCores []zapcore.Core

	if cfg.Console {
		console := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(true)), zapcore.Lock(os.Stderr), level)
		appCores = append(appCores, console)
		requestCores = append(requestCores, console)
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", cfg.Dir, err)
		}
		fileEncoder := zapcore.NewConsoleEncoder(encoderConfig(false))

		appCores = append(appCores,
			zapcore.NewCore(fileEncoder, l.file(cfg, "app.log"), level),
			zapcore.NewCore(fileEncoder, l.file(cfg, "errors.log"), zapcore.ErrorLevel),
		)
		requestCores = append(requestCores,
			zapcore.NewCore(fileEncoder, l.file(cfg, "api.log"), zapcore.InfoLevel),
		)
	}

	l.App = zap.New(zapcore.NewTee(appCores...), zap.AddCaller()).Named(AppName)
	l.Requests = zap.New(zapcore.NewTee(requestCores...)).Named(RequestsName)
	return l, nil
}

func (l *Loggers) file(cfg Config, name string) zapcore.WriteSyncer {
	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	l.files = append(l.files, lj)
	return zapcore.AddSync(lj)
}

// encoderConfig renders "[LEVEL] time name message fields".
func encoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	cfg.EncodeLevel = func(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + lvl.CapitalString() + "]")
	}
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Loggers) Sync() {
	_ = l.App.Sync()
	_ = l.Requests.Sync()
}

// Close flushes and closes the log files.
func (l *Loggers) Close() error {
	l.Sync()
	var errs []error
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

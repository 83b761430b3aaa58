// Package logger provides structured logging with rotation support.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger wraps zap logger with additional functionality.
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
	logFile   *os.File
	logPath   string
	level     zap.AtomicLevel
}

// Config holds logger configuration.
type Config struct {
	LogPath    string // Path to log file
	Level      string // Log level: debug, info, warn, error
	MaxSize    int64  // Max size in bytes before rotation (default 10MB)
	MaxBackups int    // Max number of backup files to keep
	Console    bool   // Also output to console
}

// GetInstance returns the singleton logger instance.
func GetInstance() *Logger {
	once.Do(func() {
		instance = &Logger{}
	})
	return instance
}

// New wraps an existing zap logger. Mostly useful in tests.
func New(z *zap.Logger) *Logger {
	return &Logger{
		zapLogger: z,
		sugar:     z.Sugar(),
		level:     zap.NewAtomicLevelAt(z.Level()),
	}
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize sets up the logger with the given configuration.
func (l *Logger) Initialize(config Config) error {
	if config.MaxSize == 0 {
		config.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if config.MaxBackups == 0 {
		config.MaxBackups = 5
	}

	l.level = zap.NewAtomicLevelAt(ParseLevel(config.Level))

	var fileErr error
	if config.LogPath != "" {
		fileErr = l.openFile(config.LogPath, config.MaxSize, config.MaxBackups)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	// File core (JSON)
	if l.logFile != nil {
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(l.logFile), l.level))
	}

	// Console core
	if config.Console {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), l.level))
	}

	core := zapcore.NewTee(cores...)
	l.zapLogger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	l.sugar = l.zapLogger.Sugar()

	return fileErr
}

// openFile rotates any oversized log left by a previous run and opens the
// log file for appending.
func (l *Logger) openFile(path string, maxSize int64, maxBackups int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() >= maxSize {
		rotateBackups(path, maxBackups)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.logFile = file
	l.logPath = path
	return nil
}

// SetLevel changes the minimum level of the running logger.
func (l *Logger) SetLevel(name string) {
	if l.zapLogger == nil {
		return
	}
	lvl := ParseLevel(name)
	if lvl != l.level.Level() {
		l.level.SetLevel(lvl)
		l.Info("Log level changed", zap.Stringer("level", lvl))
	}
}

// Level returns the current minimum level.
func (l *Logger) Level() zapcore.Level {
	if l.zapLogger == nil {
		return zapcore.InfoLevel
	}
	return l.level.Level()
}

func (l *Logger) enabled(lvl zapcore.Level) bool {
	return l.zapLogger != nil && l.level.Enabled(lvl)
}

// Close closes the logger and flushes any buffered data.
func (l *Logger) Close() error {
	if l.zapLogger != nil {
		_ = l.zapLogger.Sync()
	}
	if l.logFile != nil {
		err := l.logFile.Close()
		l.logFile = nil
		return err
	}
	return nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l.enabled(zapcore.DebugLevel) {
		l.zapLogger.Debug(msg, fields...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l.enabled(zapcore.InfoLevel) {
		l.zapLogger.Info(msg, fields...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l.enabled(zapcore.WarnLevel) {
		l.zapLogger.Warn(msg, fields...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l.enabled(zapcore.ErrorLevel) {
		l.zapLogger.Error(msg, fields...)
	}
}

// Panic logs the message and then panics, even when the logger has not
// been initialised.
func (l *Logger) Panic(msg string, fields ...zap.Field) {
	if l.enabled(zapcore.ErrorLevel) {
		l.zapLogger.Error(msg, fields...)
	}
	panic(msg)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(template string, args ...interface{}) {
	if l.enabled(zapcore.WarnLevel) {
		l.sugar.Warnf(template, args...)
	}
}

// LogAction logs the invocation of a named application action.
func (l *Logger) LogAction(name, source string, err error) {
	fields := []zap.Field{
		zap.String("action", name),
		zap.String("source", source),
	}
	if err != nil {
		l.Warn("action failed", append(fields, zap.Error(err))...)
		return
	}
	l.Debug("action invoked", fields...)
}

// rotateBackups shifts path.N to path.N+1 and moves path to path.1.
func rotateBackups(path string, maxBackups int) {
	for i := maxBackups - 1; i > 0; i-- {
		os.Rename(path+"."+strconv.Itoa(i), path+"."+strconv.Itoa(i+1))
	}
	os.Rename(path, path+".1")
}

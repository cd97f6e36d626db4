// ABOUTME: Process-wide structured logger backed by charmbracelet/log.
// ABOUTME: Writes to a rotating file under the data directory, optionally mirrored to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It discards output until Init is called.
var Logger = log.NewWithOptions(io.Discard, log.Options{})

var fileWriter *lumberjack.Logger

// Config holds logger configuration.
type Config struct {
	Debug   bool
	DataDir string
	// Console mirrors log output to stderr. Debug implies Console.
	Console bool
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.DataDir, "logs")
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return err
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "recomp.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug || cfg.Console {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "recomp",
	})
	return nil
}

// Close flushes and closes the log file.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

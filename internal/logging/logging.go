// Package logging provides the application logger for arch-mcp-server.
//
// Everything is written to stderr: stdout belongs to the MCP stdio
// transport and must never carry log output.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// AppLogger wraps charmbracelet/log with the server's conventions.
type AppLogger struct {
	logger *log.Logger
	debug  bool
}

// NewAppLogger creates a stderr logger at the given level ("debug", "info",
// "warn", "error"). The DEBUG environment variable forces debug level, as
// does an unparseable level string default to info.
func NewAppLogger(level string) *AppLogger {
	debug := os.Getenv("DEBUG") != ""

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "arch-mcp",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return &AppLogger{logger: logger, debug: lvl <= log.DebugLevel}
}

func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	al.logger.Debug(msg, keyvals...)
}

// With returns a logger carrying additional context key/values.
func (al *AppLogger) With(keyvals ...interface{}) *AppLogger {
	return &AppLogger{logger: al.logger.With(keyvals...), debug: al.debug}
}

// LogPerformance records the duration of an operation at debug level.
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		al.logger.Debug("performance", "operation", operation, "duration", time.Since(start))
	}
}

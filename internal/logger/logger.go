package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logging surface used across the engine.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// Nop is the default logger for library callers that pass none.
var Nop Logger = NopLogger{}

// New returns a Logger for the given component. Console output is selected by
// APP_ENV=dev or POWERTRAIN_LOG_FORMAT=console.
func New(component string) Logger {
	return NewZerologLogger(component, os.Stderr, consoleFromEnv())
}

func consoleFromEnv() bool {
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		return true
	}
	return strings.EqualFold(os.Getenv("POWERTRAIN_LOG_FORMAT"), "console")
}

// SetLevel sets the global minimum level ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

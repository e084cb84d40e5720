package scenery

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/scenery/pkg/scenery/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first logger is used to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogOutput sends all log output to w instead of stdout and the log file.
// Call before the first logger is used to take effect.
func SetLogOutput(w io.Writer) {
	internal.SetLogOutput(w)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetDebug toggles debug logging of bindings and transitions inside the navigator.
func SetDebug(enabled bool) {
	if enabled {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}

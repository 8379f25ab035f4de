package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures console logging to stderr
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// ParseLevel maps a config log level string onto the logger, falling back
// to info for unknown values.
func ParseLevel(logger *log.Logger, level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	logger.SetLevel(parsed)
}

package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewConsole returns the human-facing logger for command progress. Engine
// logs go through SetupLogger instead.
func NewConsole(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
	})
}

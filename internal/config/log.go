package config

import "log"

// Verbosity thresholds used by Logger.Log, in the shape of the teacher's
// LoggingConfig.Verbosity levels (0=errors only, escalating detail).
const (
	LevelError = 0
	LevelWarn  = 1
	LevelInfo  = 2
	LevelDebug = 3
)

// Logger gates plain log.Printf output behind a configured verbosity,
// mirroring the delegation-to-config Log method the teacher's
// internal/backend/lua.go and internal/lua/runtime.go both call through
// to. There is no structured-logging dependency anywhere in the
// retrieval pack's non-observability repos, so this stays on the
// standard library "log" package rather than introducing one.
type Logger struct {
	verbosity int
	prefix    string
}

// NewLogger creates a Logger gated at the given verbosity, tagging every
// line with prefix (e.g. "[syncadapter]").
func NewLogger(verbosity int, prefix string) *Logger {
	return &Logger{verbosity: verbosity, prefix: prefix}
}

// Log writes format/args through the standard logger if level is at or
// below the configured verbosity.
func (l *Logger) Log(level int, format string, args ...any) {
	if l == nil || level > l.verbosity {
		return
	}
	if l.prefix != "" {
		format = l.prefix + " " + format
	}
	log.Printf(format, args...)
}

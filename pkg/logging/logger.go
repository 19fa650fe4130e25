// Package logging builds the hclog loggers used by firestarter.
package logging

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel selects the log level when no flag is given.
	EnvLogLevel = "FIRESTARTER_LOG_LEVEL"
	// EnvJSONLog switches to JSON output when set to "1".
	EnvJSONLog = "FIRESTARTER_JSON_LOG"
	// EnvLogPath appends log output to a file instead of stderr.
	EnvLogPath = "FIRESTARTER_LOG_PATH"

	// DefaultLevel keeps stderr quiet unless something goes wrong.
	DefaultLevel = "warn"
)

// NewLogger creates a new hclog logger with standard settings. A level of the
// form "json:debug" forces JSON output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(EnvJSONLog) == "1"
	if rest, ok := strings.CutPrefix(level, "json"); ok {
		jsonFormat = true
		level = strings.TrimPrefix(rest, ":")
	}

	if !jsonFormat {
		output = NewPrefixWriter(linePrefix(), output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// ResolveLevel picks the log level from the command line flag, then the
// environment, then the default. It also reports where the level came from.
func ResolveLevel(flagLevel string) (level, source string) {
	if flagLevel != "" {
		return flagLevel, "--log-level"
	}
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		return envLevel, EnvLogLevel
	}
	return DefaultLevel, "default"
}

// Output returns the log destination: the file named by FIRESTARTER_LOG_PATH
// when it can be opened, otherwise fallback. The returned close function is
// never nil.
func Output(fallback io.Writer) (io.Writer, func() error) {
	if logPath := os.Getenv(EnvLogPath); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return file, file.Close
		}
	}
	return fallback, func() error { return nil }
}

func linePrefix() string {
	if runtime.GOOS == "windows" {
		return "[FS] "
	}
	return "🔥 "
}

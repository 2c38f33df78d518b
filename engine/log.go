package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// NewConsoleLogger builds a human-readable logger suitable for local runs
// and CLI tools, mirroring the zerolog setup conventions used across the
// broader formula-engine tooling this package grew out of: a Unix-time
// timestamp field that the console writer renders as HH:MM:SS, and a
// "component" field fixing the source package.
func NewConsoleLogger(component string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).With().Timestamp().Str("component", component).Logger()
}

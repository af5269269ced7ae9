// Package logging sets up the zerolog logger shared by the CLI and the
// introspection server. Every diagnostic spec.md §6.2 requires to be
// "printed to the host's stderr channel" is emitted through this logger at
// Error level with structured fields, in addition to (not instead of) the
// FFI layer's null-return convention.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/schemakit/fsl"
)

const (
	envLevel  = "FSL_LOG_LEVEL"
	envFormat = "FSL_LOG_FORMAT"
)

// New builds a zerolog.Logger writing to stderr, honoring FSL_LOG_LEVEL
// ("debug", "info", "warn", "error", ...; default "info") and
// FSL_LOG_FORMAT ("console" for human-readable output; default is
// structured JSON).
func New() zerolog.Logger {
	levelStr := os.Getenv(envLevel)
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv(envFormat) == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// LogCoreError writes a core *fsl.Error (or any error) at Error level with
// the file/line/column/kind fields spec.md §6.2 requires for diagnostics,
// when the error carries a source position.
func LogCoreError(log zerolog.Logger, op string, err error) {
	fe, ok := err.(*fsl.Error)
	if !ok {
		log.Error().Str("op", op).Err(err).Msg("operation failed")
		return
	}
	event := log.Error().Str("op", op).Str("kind", fe.Kind.String())
	if !fe.Pos.IsZero() {
		event = event.Str("file", fe.Pos.File).Int("line", fe.Pos.Line).Int("column", fe.Pos.Column)
	}
	if fe.Resource != "" {
		event = event.Str("resource", fe.Resource)
	}
	if fe.Action != "" {
		event = event.Str("action", fe.Action)
	}
	event.Msg(fe.Error())
}

// Package obslog provides the structured logger used for the pipeline's
// ambient observability: decisions and fallbacks that aren't parse errors
// in their own right (an encoding guess, a fragment-parsing recovery) but
// are worth recording. Callers that don't configure one fall back to
// slog.Default(), mirroring how other structured-logging consumers in the
// ecosystem accept an optional *slog.Logger.
package obslog

import (
	"io"
	"log/slog"
)

// Discard is a logger that drops everything, for callers (tests,
// throwaway one-off parses) that want silence without a nil check at
// every call site.
var Discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Or returns logger if non-nil, otherwise slog.Default().
func Or(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

package slog

import (
	"log/slog"
	"time"

	"github.com/pproszowski/tagstrip"
)

// Ensure LoggingStripper implements tagstrip.Stripper.
var _ tagstrip.Stripper = (*LoggingStripper)(nil)

// LoggingStripper wraps a Stripper with debug logging of per-document
// timing and size deltas.
type LoggingStripper struct {
	next   tagstrip.Stripper
	logger *slog.Logger
}

// NewLoggingStripper creates a new LoggingStripper.
func NewLoggingStripper(next tagstrip.Stripper, logger *slog.Logger) *LoggingStripper {
	return &LoggingStripper{next: next, logger: logger}
}

// Strip delegates to the wrapped stripper and logs the result.
func (s *LoggingStripper) Strip(document string, opts tagstrip.StripOptions) (string, error) {
	begin := time.Now()
	out, err := s.next.Strip(document, opts)
	if err != nil {
		s.logger.Debug("strip failed",
			"error", tagstrip.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return "", err
	}
	s.logger.Debug("strip",
		"tags", opts.Tags.Names(),
		"in_bytes", len(document),
		"out_bytes", len(out),
		"duration", time.Since(begin),
	)
	return out, nil
}

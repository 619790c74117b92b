package engine

import (
	"errors"

	"github.com/tartampluch/go-multitime/internal/config"
)

// Sentinel errors of the display engine. Both are recoverable: callers degrade
// the display instead of stopping it.
var (
	// ErrUnknownTimezone reports an identifier the resolver cannot load.
	// The composer drops the affected entry from the output.
	ErrUnknownTimezone = errors.New(config.ErrUnknownTimezone)

	// ErrScheduleComputation reports a failed wall-clock boundary computation.
	// The scheduler falls back to a fixed interval.
	ErrScheduleComputation = errors.New(config.ErrScheduleCompute)
)

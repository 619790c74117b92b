package engine

import (
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// DayDiff returns how many calendar days the target zone is ahead of the local
// zone at the instant now. Only day-of-month is compared, so a raw delta whose
// magnitude exceeds the wrap threshold is a month boundary: Jan 31 local vs Feb 1
// target gives -30, which is reported as +1.
//
// It returns 0 when enabled is false.
func DayDiff(now time.Time, local, target *time.Location, enabled bool) int {
	if !enabled {
		return 0
	}

	diff := now.In(target).Day() - now.In(local).Day()
	if diff > config.DayDiffWrapThreshold {
		return -1
	}
	if diff < -config.DayDiffWrapThreshold {
		return 1
	}
	return diff
}

// DayDiffFor resolves timezoneID before computing DayDiff.
// Resolution failures wrap ErrUnknownTimezone.
func DayDiffFor(resolver TimezoneResolver, now time.Time, local *time.Location, timezoneID string, enabled bool) (int, error) {
	if !enabled {
		return 0, nil
	}
	target, err := resolver.Resolve(timezoneID)
	if err != nil {
		return 0, err
	}
	return DayDiff(now, local, target, true), nil
}

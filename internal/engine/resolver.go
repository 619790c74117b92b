package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// TimezoneResolver turns an IANA identifier into a location.
// Implementations must wrap ErrUnknownTimezone on failure.
type TimezoneResolver interface {
	Resolve(timezoneID string) (*time.Location, error)
}

// LocationResolver resolves identifiers with time.LoadLocation and memoizes the result.
// Failures are memoized too, so a bad entry costs one lookup per session.
type LocationResolver struct {
	mu    sync.Mutex
	cache map[string]resolved
}

type resolved struct {
	loc *time.Location
	err error
}

// NewLocationResolver creates an empty resolver.
func NewLocationResolver() *LocationResolver {
	return &LocationResolver{cache: make(map[string]resolved)}
}

// Resolve implements TimezoneResolver.
// The empty identifier is rejected; time.LoadLocation would silently map it to UTC.
func (r *LocationResolver) Resolve(timezoneID string) (*time.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hit, ok := r.cache[timezoneID]; ok {
		return hit.loc, hit.err
	}

	var res resolved
	if timezoneID == "" {
		res.err = fmt.Errorf("%w: %s", ErrUnknownTimezone, config.ErrEmptyTimezone)
	} else if loc, err := time.LoadLocation(timezoneID); err != nil {
		res.err = fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, timezoneID, err)
	} else {
		res.loc = loc
	}

	r.cache[timezoneID] = res
	return res.loc, res.err
}

// IsUnknownTimezone reports whether err stems from a failed resolution.
func IsUnknownTimezone(err error) bool {
	return errors.Is(err, ErrUnknownTimezone)
}

package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// FormatKey identifies a formatter. It is never persisted.
type FormatKey struct {
	TimezoneID  string
	Use24Hour   bool
	ShowSeconds bool
}

// Formatter renders instants for a single zone with a fixed layout.
// The locale is fixed: only digits and the AM/PM token vary.
type Formatter struct {
	key    FormatKey
	loc    *time.Location
	layout string
}

// Key returns the cache key the formatter was built for.
func (f *Formatter) Key() FormatKey {
	return f.key
}

// Format renders t in the formatter's zone, e.g. "15:04:05" or "3:04:05 PM".
func (f *Formatter) Format(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}

// Split renders t and separates the AM/PM token, which sinks style on its own.
// In 24-hour mode meridiem is empty.
func (f *Formatter) Split(t time.Time) (clock, meridiem string) {
	text := f.Format(t)
	if f.key.Use24Hour {
		return text, ""
	}
	clock, meridiem, found := strings.Cut(text, config.MeridiemSeparator)
	if !found {
		return text, ""
	}
	return clock, meridiem
}

// layoutFor picks the reference layout for a format mode.
func layoutFor(use24Hour, showSeconds bool) string {
	switch {
	case use24Hour && showSeconds:
		return config.Layout24HourSeconds
	case use24Hour:
		return config.Layout24Hour
	case showSeconds:
		return config.Layout12HourSeconds
	default:
		return config.Layout12Hour
	}
}

// FormatterCache hands out one Formatter per key and reuses it across ticks.
// The format mode (24-hour, seconds) is engine-wide: a Get under a different
// mode than the previous one drops every cached formatter first.
//
// FormatterCache is not safe for concurrent use; the Engine serializes access.
type FormatterCache struct {
	resolver TimezoneResolver
	entries  map[FormatKey]*Formatter

	mode    [2]bool
	hasMode bool
}

// NewFormatterCache creates an empty cache backed by resolver.
func NewFormatterCache(resolver TimezoneResolver) *FormatterCache {
	return &FormatterCache{
		resolver: resolver,
		entries:  make(map[FormatKey]*Formatter),
	}
}

// Get returns the cached formatter for the key, building it on first use.
// An unresolvable zone yields an error wrapping ErrUnknownTimezone and caches nothing.
func (c *FormatterCache) Get(timezoneID string, use24Hour, showSeconds bool) (*Formatter, error) {
	mode := [2]bool{use24Hour, showSeconds}
	if c.hasMode && c.mode != mode {
		c.Invalidate()
	}
	c.mode, c.hasMode = mode, true

	key := FormatKey{TimezoneID: timezoneID, Use24Hour: use24Hour, ShowSeconds: showSeconds}
	if f, ok := c.entries[key]; ok {
		return f, nil
	}

	loc, err := c.resolver.Resolve(timezoneID)
	if err != nil {
		return nil, err
	}

	f := &Formatter{
		key:    key,
		loc:    loc,
		layout: layoutFor(use24Hour, showSeconds),
	}
	c.entries[key] = f
	return f, nil
}

// Invalidate drops every cached formatter.
func (c *FormatterCache) Invalidate() {
	clear(c.entries)
}

// Len returns the number of cached formatters.
func (c *FormatterCache) Len() int {
	return len(c.entries)
}

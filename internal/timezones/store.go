// Package timezones persists the user's clock list and the city catalog used to
// add new clocks.
package timezones

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// Store is the ordered timezone list, saved as JSON in the app preferences.
// It implements engine.TimezoneListProvider. The list is never empty: a missing
// or unreadable value is replaced by America/New_York, and removing the last
// entry is refused.
type Store struct {
	prefs    fyne.Preferences
	resolver engine.TimezoneResolver

	mu      sync.Mutex
	entries []engine.TimezoneEntry
	subs    map[int]func()
	nextSub int
}

// NewStore loads the list from prefs. Zones are validated with resolver on Add.
func NewStore(prefs fyne.Preferences, resolver engine.TimezoneResolver) *Store {
	s := &Store{
		prefs:    prefs,
		resolver: resolver,
		subs:     make(map[int]func()),
	}
	s.mu.Lock()
	s.loadLocked()
	s.mu.Unlock()
	return s
}

// CurrentEntries returns a copy of the list sorted by Order.
func (s *Store) CurrentEntries() []engine.TimezoneEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Reload re-reads the preference value, e.g. after another window edited it.
func (s *Store) Reload() {
	s.mu.Lock()
	s.loadLocked()
	s.mu.Unlock()
	s.notify()
}

// Add appends a clock for timezoneID after the current last one.
func (s *Store) Add(timezoneID, cityName string) (engine.TimezoneEntry, error) {
	if s.resolver != nil {
		if _, err := s.resolver.Resolve(timezoneID); err != nil {
			return engine.TimezoneEntry{}, err
		}
	}

	s.mu.Lock()
	order := 0
	for _, e := range s.entries {
		order = max(order, e.Order+1)
	}
	entry := engine.TimezoneEntry{
		ID:          uuid.NewString(),
		TimezoneID:  timezoneID,
		Order:       order,
		DisplayName: strings.TrimSpace(cityName),
	}
	s.entries = append(s.entries, entry)
	s.saveLocked()
	s.mu.Unlock()

	slog.Info(config.MsgTimezoneAdded,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyTimezone, timezoneID,
		config.LogKeyCity, entry.DisplayName)
	s.notify()
	return entry, nil
}

// Delete removes the entry with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if len(s.entries) == 1 {
		s.mu.Unlock()
		return ErrLastEntry
	}
	removed := s.entries[idx]
	s.entries = slices.Delete(s.entries, idx, idx+1)
	s.saveLocked()
	s.mu.Unlock()

	slog.Info(config.MsgTimezoneRemoved,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyEntryID, id,
		config.LogKeyTimezone, removed.TimezoneID)
	s.notify()
	return nil
}

// Move shifts the entry at position from to position to and renumbers every
// Order to match the new positions.
func (s *Store) Move(from, to int) error {
	s.mu.Lock()
	n := len(s.entries)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d -> %d (len %d)", ErrMoveRange, from, to, n)
	}
	if from == to {
		s.mu.Unlock()
		return nil
	}

	moved := s.entries[from]
	s.entries = slices.Delete(s.entries, from, from+1)
	s.entries = slices.Insert(s.entries, to, moved)
	for i := range s.entries {
		s.entries[i].Order = i
	}
	s.saveLocked()
	s.mu.Unlock()

	slog.Info(config.MsgTimezoneMoved,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyTimezone, moved.TimezoneID,
		config.LogKeyFrom, from,
		config.LogKeyTo, to)
	s.notify()
	return nil
}

// SetPrefix changes the label shown before an entry's time.
// Surrounding whitespace is dropped and the result is capped at
// config.MaxPrefixLength runes. An empty prefix clears it.
func (s *Store) SetPrefix(id, prefix string) error {
	prefix = NormalizePrefix(prefix)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if s.entries[idx].CustomPrefix == prefix {
		s.mu.Unlock()
		return nil
	}
	s.entries[idx].CustomPrefix = prefix
	s.saveLocked()
	s.mu.Unlock()

	slog.Info(config.MsgPrefixUpdated,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyEntryID, id,
		config.LogKeyPrefix, prefix)
	s.notify()
	return nil
}

// NormalizePrefix trims and truncates a user-entered prefix.
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) <= config.MaxPrefixLength {
		return prefix
	}
	runes := []rune(prefix)
	return strings.TrimSpace(string(runes[:config.MaxPrefixLength]))
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.entries, func(e engine.TimezoneEntry) bool {
		return e.ID == id
	})
}

func (s *Store) loadLocked() {
	raw := s.prefs.String(config.PrefTimezoneItems)

	var entries []engine.TimezoneEntry
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			slog.Warn(config.ErrTimezoneLoad,
				config.LogKeyComponent, config.CompTimezones,
				config.LogKeyError, err)
			entries = nil
		}
	}

	entries = slices.DeleteFunc(entries, func(e engine.TimezoneEntry) bool {
		return e.TimezoneID == ""
	})
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
	}
	slices.SortStableFunc(entries, func(a, b engine.TimezoneEntry) int {
		return cmp.Compare(a.Order, b.Order)
	})
	repaired := hasDuplicateOrder(entries)
	if repaired {
		for i := range entries {
			entries[i].Order = i
		}
	}

	if len(entries) == 0 {
		entries = []engine.TimezoneEntry{{
			ID:         uuid.NewString(),
			TimezoneID: config.DefaultTimezoneID,
			Order:      0,
		}}
		s.entries = entries
		s.saveLocked()
		slog.Info(config.MsgTimezoneSeeded,
			config.LogKeyComponent, config.CompTimezones,
			config.LogKeyTimezone, config.DefaultTimezoneID)
		return
	}

	s.entries = entries
	if repaired {
		s.saveLocked()
		slog.Warn(config.MsgOrderRepaired,
			config.LogKeyComponent, config.CompTimezones,
			config.LogKeyCount, len(entries))
	}
	slog.Debug(config.MsgEntriesChanged,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyCount, len(entries))
}

// hasDuplicateOrder reports whether two entries of a sorted list share an Order.
func hasDuplicateOrder(sorted []engine.TimezoneEntry) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Order == sorted[i-1].Order {
			return true
		}
	}
	return false
}

func (s *Store) saveLocked() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		slog.Error(config.ErrTimezoneSave,
			config.LogKeyComponent, config.CompTimezones,
			config.LogKeyError, err)
		return
	}
	s.prefs.SetString(config.PrefTimezoneItems, string(data))
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

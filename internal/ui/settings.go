package ui

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// PrefSettings exposes the display toggles stored in the app preferences.
// It implements engine.SettingsProvider and only notifies subscribers when
// one of the five toggles actually changed.
type PrefSettings struct {
	prefs fyne.Preferences

	mu      sync.Mutex
	last    engine.DisplaySettings
	subs    map[int]func()
	nextSub int
}

// NewPrefSettings reads the current toggles and starts watching prefs.
func NewPrefSettings(prefs fyne.Preferences) *PrefSettings {
	s := &PrefSettings{
		prefs: prefs,
		subs:  make(map[int]func()),
	}
	s.last = s.CurrentSettings()
	prefs.AddChangeListener(s.onChange)
	return s
}

// CurrentSettings reads a fresh snapshot from the preferences.
func (s *PrefSettings) CurrentSettings() engine.DisplaySettings {
	return engine.DisplaySettings{
		Use24Hour:   s.prefs.BoolWithFallback(config.PrefUse24Hour, config.DefaultUse24Hour),
		ShowSeconds: s.prefs.BoolWithFallback(config.PrefShowSeconds, config.DefaultShowSeconds),
		ShowFlags:   s.prefs.BoolWithFallback(config.PrefShowFlags, config.DefaultShowFlags),
		ShowDayDiff: s.prefs.BoolWithFallback(config.PrefShowDayDiff, config.DefaultShowDayDiff),
		StackClocks: s.prefs.BoolWithFallback(config.PrefStackClocks, config.DefaultStackClocks),
	}
}

// Subscribe registers fn to run whenever the toggles change.
func (s *PrefSettings) Subscribe(fn func()) (cancel func()) {
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

// onChange runs for every preference write, including unrelated keys.
func (s *PrefSettings) onChange() {
	current := s.CurrentSettings()

	s.mu.Lock()
	if current == s.last {
		s.mu.Unlock()
		return
	}
	s.last = current
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	slog.Debug(config.MsgSettingsChanged,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyUse24Hour, current.Use24Hour,
		config.LogKeySeconds, current.ShowSeconds)

	for _, fn := range fns {
		fn()
	}
}

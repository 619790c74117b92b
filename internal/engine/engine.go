package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// TimezoneListProvider exposes the ordered clock list and notifies on change.
type TimezoneListProvider interface {
	CurrentEntries() []TimezoneEntry
	Subscribe(fn func()) (cancel func())
}

// SettingsProvider exposes the display toggles and notifies on change.
type SettingsProvider interface {
	CurrentSettings() DisplaySettings
	Subscribe(fn func()) (cancel func())
}

// PresentationSink turns a RenderOutput into pixels. The engine never draws.
type PresentationSink interface {
	Present(out RenderOutput)
}

// Engine is the time display engine: it keeps the refresh schedule, pulls fresh
// snapshots from its providers on every tick, and hands the composed layout to
// the sink.
//
// All entry points are serialized. Lock order is scheduler then engine; the
// engine never calls into the scheduler while holding its own lock.
type Engine struct {
	entries  TimezoneListProvider
	settings SettingsProvider
	sink     PresentationSink
	clock    Clock

	// Local is the zone day offsets are measured against. Nil means time.Local.
	Local *time.Location

	composer  *Composer
	scheduler *Scheduler

	mu       sync.Mutex
	last     DisplaySettings
	running  bool
	cancels  []func()
	lastOut  RenderOutput
	hasFrame bool
}

// NewEngine wires the engine. Nothing runs until Start.
func NewEngine(entries TimezoneListProvider, settings SettingsProvider, resolver TimezoneResolver, sink PresentationSink, clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	e := &Engine{
		entries:  entries,
		settings: settings,
		sink:     sink,
		clock:    clock,
		composer: NewComposer(resolver),
	}
	e.scheduler = NewScheduler(clock, e.Refresh)
	return e
}

// Scheduler exposes the refresh scheduler, mainly for diagnostics.
func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

// Start subscribes to both providers and arms the schedule for the current
// settings. The first frame is presented before Start returns.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return errors.New(config.ErrAlreadyRunning)
	}
	e.running = true
	e.last = e.settings.CurrentSettings()
	mode := e.last.Mode()
	e.cancels = append(e.cancels,
		e.entries.Subscribe(e.EntriesChanged),
		e.settings.Subscribe(e.SettingsChanged),
	)
	e.mu.Unlock()

	e.scheduler.Configure(mode)

	slog.Info(config.MsgEngineStart,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, mode.String())
	return nil
}

// Stop cancels the schedule and drops the subscriptions. It is idempotent.
func (e *Engine) Stop() {
	e.scheduler.Cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	for _, cancel := range e.cancels {
		if cancel != nil {
			cancel()
		}
	}
	e.cancels = nil
	e.running = false

	slog.Info(config.MsgEngineStop, config.LogKeyComponent, config.CompEngine)
}

// EntriesChanged re-renders after the timezone list changed.
func (e *Engine) EntriesChanged() {
	slog.Debug(config.MsgEntriesChanged, config.LogKeyComponent, config.CompEngine)
	e.Refresh()
}

// SettingsChanged reacts to new display settings. A format change (24-hour or
// seconds) rebuilds the formatters and re-creates the schedule; anything else
// only re-renders.
func (e *Engine) SettingsChanged() {
	current := e.settings.CurrentSettings()

	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	previous := e.last
	e.last = current
	formatChanged := previous.formatChanged(current)
	if formatChanged {
		e.composer.Cache().Invalidate()
	}
	e.mu.Unlock()

	slog.Debug(config.MsgSettingsChanged,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyUse24Hour, current.Use24Hour,
		config.LogKeySeconds, current.ShowSeconds)

	if formatChanged {
		slog.Info(config.MsgFormatChanged,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyMode, current.Mode().String())
		e.scheduler.Configure(current.Mode())
		return
	}
	e.Refresh()
}

// Refresh composes one frame from fresh snapshots and presents it.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.entries.CurrentEntries()
	settings := e.settings.CurrentSettings()
	out := e.composer.Compose(entries, settings, e.clock.Now(), e.Local)

	e.lastOut = out
	e.hasFrame = true
	if e.sink != nil {
		e.sink.Present(out)
	}
}

// LastOutput returns the most recent frame, if any was composed.
func (e *Engine) LastOutput() (RenderOutput, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastOut, e.hasFrame
}

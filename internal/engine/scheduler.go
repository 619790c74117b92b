package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// Mode is the refresh cadence of the Scheduler.
type Mode int

const (
	ModeSeconds Mode = iota + 1
	ModeMinutes
)

// Interval returns the tick period of the mode, or 0 for an unknown mode.
func (m Mode) Interval() time.Duration {
	switch m {
	case ModeSeconds:
		return config.IntervalSeconds
	case ModeMinutes:
		return config.IntervalMinutes
	default:
		return 0
	}
}

func (m Mode) String() string {
	switch m {
	case ModeSeconds:
		return "seconds"
	case ModeMinutes:
		return "minutes"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ScheduleState describes the armed schedule.
type ScheduleState struct {
	Mode     Mode
	NextFire time.Time
	Interval time.Duration

	// Degraded is set when the boundary could not be computed and ticks run
	// at a fixed interval from the configuration instant instead.
	Degraded bool
}

// BoundaryFunc computes the first wall-clock boundary strictly after now.
type BoundaryFunc func(now time.Time, mode Mode) (time.Time, error)

// NextBoundary returns the next exact second or minute after now. It works on
// absolute time, so DST transitions in now's zone do not move the result; zone
// offsets are whole minutes, so it is also a local second or minute boundary.
func NextBoundary(now time.Time, mode Mode) (time.Time, error) {
	interval := mode.Interval()
	if interval <= 0 {
		return time.Time{}, fmt.Errorf("%w: %s: %s", ErrScheduleComputation, config.ErrUnknownMode, mode)
	}

	next := now.Truncate(interval).Add(interval)
	if !next.After(now) || next.Sub(now) > interval {
		return time.Time{}, fmt.Errorf("%w: %s: %s -> %s",
			ErrScheduleComputation, config.ErrBoundaryRange,
			now.Format(time.RFC3339Nano), next.Format(time.RFC3339Nano))
	}
	return next, nil
}

// Scheduler calls a refresh function on exact wall-clock second or minute boundaries.
//
// Ticks are placed at anchor + k*interval, where the anchor is the first boundary
// after the last Configure. Late wake-ups skip the slots they missed instead of
// firing a burst. The refresh function runs with the scheduler lock held and must
// not call back into the Scheduler.
type Scheduler struct {
	clock    Clock
	boundary BoundaryFunc
	refresh  func()

	mu     sync.Mutex
	state  ScheduleState
	anchor time.Time
	ticks  int64
	timer  Timer
	gen    uint64
	active bool
}

// NewScheduler creates an idle scheduler. Nothing fires until Configure.
func NewScheduler(clock Clock, refresh func()) *Scheduler {
	return &Scheduler{
		clock:    clock,
		boundary: NextBoundary,
		refresh:  refresh,
	}
}

// SetBoundary replaces the boundary computation. Nil restores NextBoundary.
func (s *Scheduler) SetBoundary(fn BoundaryFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		fn = NextBoundary
	}
	s.boundary = fn
}

// Configure replaces any active schedule: it cancels the old timer, refreshes
// once synchronously, then arms the first tick on the next boundary of mode.
func (s *Scheduler) Configure(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.refresh()

	now := s.clock.Now()
	interval := mode.Interval()
	if interval <= 0 {
		interval = config.IntervalMinutes
	}
	degraded := false

	next, err := s.boundary(now, mode)
	if err != nil {
		next = now.Add(interval)
		degraded = true
		slog.Warn(config.MsgScheduleDegrade,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyMode, mode.String(),
			config.LogKeyInterval, interval,
			config.LogKeyError, err)
	}

	s.state = ScheduleState{Mode: mode, NextFire: next, Interval: interval, Degraded: degraded}
	s.anchor = next
	s.ticks = 0
	s.active = true
	s.armLocked(now)

	slog.Debug(config.MsgScheduleArmed,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyMode, mode.String(),
		config.LogKeyNextFire, next,
		config.LogKeyDegraded, degraded)
}

// Cancel stops the schedule. It is idempotent, and once it returns the
// refresh function is not called again until the next Configure.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.stopLocked()
	slog.Debug(config.MsgScheduleCancel, config.LogKeyComponent, config.CompScheduler)
}

// State returns the current schedule and whether one is active.
func (s *Scheduler) State() (ScheduleState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.active
}

// stopLocked disarms the timer and invalidates callbacks already in flight.
func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.active = false
}

func (s *Scheduler) armLocked(now time.Time) {
	delay := s.state.NextFire.Sub(now)
	if delay < 0 {
		delay = 0
	}
	gen := s.gen
	s.timer = s.clock.AfterFunc(delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A callback from a cancelled or replaced schedule.
	if !s.active || gen != s.gen {
		return
	}

	now := s.clock.Now()
	early := s.state.NextFire.Sub(now)

	switch {
	case early > s.state.Interval:
		// The wall clock jumped back by more than a period; waiting for the old
		// deadline would freeze the display.
		slog.Info(config.MsgScheduleStep,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyDrift, early)
		s.refresh()
		s.reanchorLocked(now)
		return
	case early > config.TimerTolerance:
		slog.Debug(config.MsgScheduleEarly,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyDrift, early)
		s.armLocked(now)
		return
	}

	s.refresh()

	interval := s.state.Interval
	s.ticks++
	next := s.anchor.Add(time.Duration(s.ticks) * interval)
	if !next.After(now) {
		missed := int64(now.Sub(s.anchor) / interval)
		s.ticks = missed + 1
		next = s.anchor.Add(time.Duration(s.ticks) * interval)
		slog.Debug(config.MsgScheduleSkip,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyNextFire, next)
	}
	s.state.NextFire = next
	s.armLocked(now)
}

// reanchorLocked recomputes the boundary after a wall clock step without
// the immediate refresh that Configure performs.
func (s *Scheduler) reanchorLocked(now time.Time) {
	next, err := s.boundary(now, s.state.Mode)
	degraded := false
	if err != nil {
		next = now.Add(s.state.Interval)
		degraded = true
		slog.Warn(config.MsgScheduleDegrade,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyMode, s.state.Mode.String(),
			config.LogKeyError, err)
	}
	s.state.NextFire = next
	s.state.Degraded = degraded
	s.anchor = next
	s.ticks = 0
	s.armLocked(now)
}

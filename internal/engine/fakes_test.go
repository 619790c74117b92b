package engine_test

import (
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// FakeClock controls time for deterministic scheduler tests.
// Timers are driven by elapsed (monotonic) time like time.AfterFunc, while Now
// reports a wall clock that Step can move independently.
type FakeClock struct {
	mu      sync.Mutex
	wall    time.Time
	elapsed time.Duration
	timers  []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{wall: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wall
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) engine.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.elapsed + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves both clocks forward, running due timers in order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.elapsed + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.wall = c.wall.Add(target - c.elapsed)
			c.elapsed = target
			c.mu.Unlock()
			return
		}
		c.wall = c.wall.Add(next.due - c.elapsed)
		c.elapsed = next.due
		next.fired = true
		c.mu.Unlock()

		next.fn()
	}
}

// Step moves only the wall clock, as an NTP correction or a manual change would.
func (c *FakeClock) Step(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wall = c.wall.Add(d)
}

// Pending returns the number of armed timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	var pending []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.due <= target {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].due < pending[j].due })
	return pending[0]
}

// MockSink records presented outputs using `testify/mock`.
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Present(out engine.RenderOutput) {
	m.Called(out)
}

// recordingSink keeps every frame for inspection.
type recordingSink struct {
	mu     sync.Mutex
	frames []engine.RenderOutput
}

func (s *recordingSink) Present(out engine.RenderOutput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, out)
}

func (s *recordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *recordingSink) Last() engine.RenderOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return engine.RenderOutput{}
	}
	return s.frames[len(s.frames)-1]
}

// subscribers is a minimal change-notification fan-out shared by the fake providers.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (s *subscribers) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *subscribers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

type fakeEntries struct {
	subscribers
	mu      sync.Mutex
	entries []engine.TimezoneEntry
}

func (f *fakeEntries) CurrentEntries() []engine.TimezoneEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.TimezoneEntry(nil), f.entries...)
}

func (f *fakeEntries) Set(entries ...engine.TimezoneEntry) {
	f.mu.Lock()
	f.entries = entries
	f.mu.Unlock()
	f.notify()
}

type fakeSettings struct {
	subscribers
	mu       sync.Mutex
	settings engine.DisplaySettings
}

func (f *fakeSettings) CurrentSettings() engine.DisplaySettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeSettings) Set(s engine.DisplaySettings) {
	f.mu.Lock()
	f.settings = s
	f.mu.Unlock()
	f.notify()
}

// mustLoad loads a zone or panics; test data only uses valid names.
func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

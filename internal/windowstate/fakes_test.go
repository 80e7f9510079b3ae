package windowstate

import (
	"errors"
	"sync"
	"time"

	"github.com/1broseidon/winstate/internal/platform"
)

type fakeScreen struct {
	displays []platform.Display
	// matching overrides DisplayMatching when set.
	matching *platform.Display
}

func newFakeScreen(bounds ...platform.Rect) *fakeScreen {
	s := &fakeScreen{}
	for i, b := range bounds {
		s.displays = append(s.displays, platform.Display{ID: i, Bounds: b, Usable: b, Primary: i == 0})
	}
	return s
}

func (s *fakeScreen) Displays() ([]platform.Display, error) {
	return s.displays, nil
}

func (s *fakeScreen) PrimaryDisplay() (platform.Display, error) {
	d, ok := platform.PrimaryOf(s.displays)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

func (s *fakeScreen) DisplayMatching(r platform.Rect) (platform.Display, error) {
	if s.matching != nil {
		return *s.matching, nil
	}
	d, ok := platform.MatchDisplay(s.displays, r)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

type fakeSub struct {
	w    *fakeWindow
	kind string
	id   int
}

func (s fakeSub) Cancel() {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	delete(s.w.handlers[s.kind], s.id)
}

type fakeWindow struct {
	mu         sync.Mutex
	bounds     platform.Rect
	maximized  bool
	minimized  bool
	fullScreen bool
	destroyed  bool

	boundsCalls    int
	maximizeCalls  int
	fullScreenCall int

	nextID   int
	handlers map[string]map[int]func()
}

func newFakeWindow(bounds platform.Rect) *fakeWindow {
	return &fakeWindow{bounds: bounds, handlers: make(map[string]map[int]func())}
}

var errDestroyed = errors.New("window destroyed")

func (w *fakeWindow) Bounds() (platform.Rect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.boundsCalls++
	if w.destroyed {
		return platform.Rect{}, errDestroyed
	}
	return w.bounds, nil
}

func (w *fakeWindow) IsMaximized() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errDestroyed
	}
	return w.maximized, nil
}

func (w *fakeWindow) IsMinimized() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errDestroyed
	}
	return w.minimized, nil
}

func (w *fakeWindow) IsFullScreen() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errDestroyed
	}
	return w.fullScreen, nil
}

func (w *fakeWindow) Maximize() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.maximizeCalls++
	w.maximized = true
	return nil
}

func (w *fakeWindow) SetFullScreen(fullScreen bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullScreenCall++
	w.fullScreen = fullScreen
	return nil
}

func (w *fakeWindow) on(kind string, fn func()) platform.Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.handlers[kind] == nil {
		w.handlers[kind] = make(map[int]func())
	}
	id := w.nextID
	w.nextID++
	w.handlers[kind][id] = fn
	return fakeSub{w: w, kind: kind, id: id}
}

func (w *fakeWindow) OnResize(fn func()) platform.Subscription { return w.on("resize", fn) }
func (w *fakeWindow) OnMove(fn func()) platform.Subscription   { return w.on("move", fn) }
func (w *fakeWindow) OnClose(fn func()) platform.Subscription  { return w.on("close", fn) }
func (w *fakeWindow) OnClosed(fn func()) platform.Subscription { return w.on("closed", fn) }

func (w *fakeWindow) emit(kind string) {
	w.mu.Lock()
	fns := make([]func(), 0, len(w.handlers[kind]))
	for _, fn := range w.handlers[kind] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (w *fakeWindow) listenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, hs := range w.handlers {
		n += len(hs)
	}
	return n
}

func (w *fakeWindow) setBounds(r platform.Rect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bounds = r
}

func (w *fakeWindow) calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boundsCalls
}

// fakeScheduler queues tasks until fire is called.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// pending returns timers that were neither stopped nor fired.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireAll runs every pending timer.
func (s *fakeScheduler) fireAll() int {
	pending := s.pending()
	for _, t := range pending {
		s.mu.Lock()
		t.fired = true
		s.mu.Unlock()
		t.fn()
	}
	return len(pending)
}

// memStore keeps the last saved geometry as encoded JSON.
type memStore struct {
	mu      sync.Mutex
	record  *Record
	loadErr error
	saveErr error
	saves   []Geometry
}

func (s *memStore) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.record == nil {
		return nil, ErrNoState
	}
	return s.record, nil
}

func (s *memStore) Save(g Geometry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, g.Clone())
	return nil
}

func (s *memStore) last() (Geometry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saves) == 0 {
		return Geometry{}, false
	}
	return s.saves[len(s.saves)-1], true
}

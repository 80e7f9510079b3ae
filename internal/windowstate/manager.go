package windowstate

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/winstate/internal/appdata"
	"github.com/1broseidon/winstate/internal/platform"
)

// Config controls a Manager. Zero sizes and delays fall back to the package
// defaults; use DefaultConfig to get the restore flags switched on.
type Config struct {
	DefaultWidth  int
	DefaultHeight int

	// Store overrides the file store built from Dir and File.
	Store Store
	// Dir is the directory holding the state file. Empty means the
	// application data directory.
	Dir  string
	File string

	// Maximize and FullScreen restore those modes when a window is managed.
	Maximize   bool
	FullScreen bool

	EventDelay time.Duration
	Scheduler  Scheduler
	Logger     *slog.Logger
}

// DefaultConfig returns the configuration used when nothing is customized.
func DefaultConfig() Config {
	return Config{
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
		File:          DefaultFileName,
		Maximize:      true,
		FullScreen:    true,
		EventDelay:    DefaultEventDelay,
	}
}

// Manager owns one window's geometry. It restores the saved state on
// construction, tracks resize and move events with a debounce, and persists on
// close. None of its methods return errors: every failure degrades to
// best-effort restore and is only logged.
type Manager struct {
	screen    platform.Screen
	store     Store
	scheduler Scheduler
	delay     time.Duration
	maximize  bool
	fullScr   bool
	logger    *slog.Logger

	mu      sync.Mutex
	state   Geometry
	outcome Outcome
	win     platform.Window
	subs    []platform.Subscription
	timer   Timer
	gen     uint64
}

// New loads and reconciles the saved geometry against the displays reported
// by screen. screen may be nil, in which case any saved state that names a
// display is treated as stale.
func New(cfg Config, screen platform.Screen) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = RealScheduler
	}
	delay := cfg.EventDelay
	if delay <= 0 {
		delay = DefaultEventDelay
	}

	m := &Manager{
		screen:    screen,
		scheduler: scheduler,
		delay:     delay,
		maximize:  cfg.Maximize,
		fullScr:   cfg.FullScreen,
		logger:    logger,
	}

	m.store = cfg.Store
	if m.store == nil {
		store, err := openFileStore(cfg.Dir, cfg.File)
		if err != nil {
			logger.Warn("window state storage unavailable", "error", err)
		} else {
			m.store = store
		}
	}

	rec := m.load()

	var topo Topology
	if screen != nil {
		t, err := CurrentTopology(screen)
		if err != nil {
			logger.Warn("display query failed", "error", err)
		} else {
			topo = t
		}
	}

	defaults := Defaults{Width: cfg.DefaultWidth, Height: cfg.DefaultHeight}
	m.state, m.outcome = Reconcile(rec, topo, defaults)

	logger.Info("window state loaded",
		"outcome", m.outcome.String(),
		"width", m.state.Width,
		"height", m.state.Height,
		"maximized", m.state.IsMaximized,
		"fullscreen", m.state.IsFullScreen)

	return m
}

func openFileStore(dir, file string) (*FileStore, error) {
	if dir == "" {
		d, err := appdata.Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return NewFileStore(dir, file)
}

func (m *Manager) load() (rec *Record) {
	if m.store == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("window state load panicked", "error", r)
			rec = nil
		}
	}()

	rec, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoState) {
			m.logger.Debug("no saved window state")
		} else {
			m.logger.Warn("ignoring unreadable window state", "error", err)
		}
		return nil
	}
	return rec
}

// X returns the saved horizontal position, if any.
func (m *Manager) X() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.X == nil {
		return 0, false
	}
	return *m.state.X, true
}

// Y returns the saved vertical position, if any.
func (m *Manager) Y() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Y == nil {
		return 0, false
	}
	return *m.state.Y, true
}

func (m *Manager) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Width
}

func (m *Manager) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Height
}

func (m *Manager) IsMaximized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsMaximized
}

func (m *Manager) IsFullScreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsFullScreen
}

// DisplayBounds returns the bounds of the display the window last occupied.
func (m *Manager) DisplayBounds() (platform.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.DisplayBounds == nil {
		return platform.Rect{}, false
	}
	return *m.state.DisplayBounds, true
}

// State returns a copy of the current geometry.
func (m *Manager) State() Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Outcome reports how the startup state was derived.
func (m *Manager) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// Manage restores the maximized/full-screen mode on win and starts tracking
// its events. A previously managed window is released first.
func (m *Manager) Manage(win platform.Window) {
	if win == nil {
		return
	}
	m.Unmanage()

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.win = win
	restoreMax := m.maximize && m.state.IsMaximized
	restoreFull := m.fullScr && m.state.IsFullScreen
	m.mu.Unlock()

	if restoreMax {
		m.hostCall("maximize", win.Maximize)
	}
	if restoreFull {
		m.hostCall("set fullscreen", func() error { return win.SetFullScreen(true) })
	}

	subs := []platform.Subscription{
		win.OnResize(func() { m.stateChanged(gen) }),
		win.OnMove(func() { m.stateChanged(gen) }),
		win.OnClose(func() { m.closing(gen, win) }),
		win.OnClosed(func() { m.closed(gen, win) }),
	}

	m.mu.Lock()
	if m.gen != gen {
		// Unmanaged while subscribing.
		m.mu.Unlock()
		cancelAll(subs)
		return
	}
	m.subs = subs
	m.mu.Unlock()

	m.logger.Debug("window managed")
}

// Unmanage drops all event subscriptions and any pending debounce. It is a
// no-op when no window is managed.
func (m *Manager) Unmanage() {
	m.mu.Lock()
	if m.win == nil {
		m.mu.Unlock()
		return
	}
	subs := m.subs
	m.subs = nil
	m.win = nil
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	cancelAll(subs)
	m.logger.Debug("window unmanaged")
}

// SaveState captures win's geometry when win is non-nil, then persists the
// in-memory state. Write failures are logged and otherwise ignored.
func (m *Manager) SaveState(win platform.Window) {
	if win != nil {
		m.updateState(win)
	}
	m.persist()
}

func (m *Manager) persist() {
	if m.store == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("window state save panicked", "error", r)
		}
	}()

	g := m.State()
	if err := m.store.Save(g); err != nil {
		m.logger.Warn("failed to save window state", "error", err)
		return
	}
	m.logger.Debug("window state saved", "width", g.Width, "height", g.Height)
}

// stateChanged restarts the debounce timer for resize and move events.
func (m *Manager) stateChanged(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.win == nil {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = m.scheduler.AfterFunc(m.delay, func() { m.debounceFired(gen) })
}

func (m *Manager) debounceFired(gen uint64) {
	m.mu.Lock()
	if m.gen != gen || m.win == nil {
		m.mu.Unlock()
		return
	}
	win := m.win
	m.timer = nil
	m.mu.Unlock()

	m.updateState(win)
}

// closing captures state immediately; the window may be gone before a
// debounce timer would fire.
func (m *Manager) closing(gen uint64, win platform.Window) {
	m.mu.Lock()
	current := m.gen == gen
	m.mu.Unlock()
	if current {
		m.updateState(win)
	}
}

func (m *Manager) closed(gen uint64, win platform.Window) {
	m.mu.Lock()
	current := m.gen == gen
	m.mu.Unlock()
	if !current {
		return
	}
	m.Unmanage()
	m.SaveState(win)
}

// updateState copies the live window geometry into the in-memory state.
// Position and size are only taken in normal mode so the last normal
// rectangle survives maximize, minimize and full screen. Any failure while
// querying the window skips the whole update.
func (m *Manager) updateState(win platform.Window) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug("window query panicked, update skipped", "error", r)
		}
	}()

	snap, err := m.snapshot(win)
	if err != nil {
		m.logger.Debug("window query failed, update skipped", "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.normal && snap.bounds.Width > 0 && snap.bounds.Height > 0 {
		m.state.X = intPtr(snap.bounds.X)
		m.state.Y = intPtr(snap.bounds.Y)
		m.state.Width = snap.bounds.Width
		m.state.Height = snap.bounds.Height
	}
	m.state.IsMaximized = snap.maximized
	m.state.IsFullScreen = snap.fullScreen
	db := snap.display
	m.state.DisplayBounds = &db
}

type windowSnapshot struct {
	bounds     platform.Rect
	maximized  bool
	fullScreen bool
	normal     bool
	display    platform.Rect
}

func (m *Manager) snapshot(win platform.Window) (windowSnapshot, error) {
	var snap windowSnapshot

	bounds, err := win.Bounds()
	if err != nil {
		return snap, fmt.Errorf("bounds: %w", err)
	}
	maximized, err := win.IsMaximized()
	if err != nil {
		return snap, fmt.Errorf("maximized: %w", err)
	}
	minimized, err := win.IsMinimized()
	if err != nil {
		return snap, fmt.Errorf("minimized: %w", err)
	}
	fullScreen, err := win.IsFullScreen()
	if err != nil {
		return snap, fmt.Errorf("fullscreen: %w", err)
	}
	if m.screen == nil {
		return snap, fmt.Errorf("no screen to match display")
	}
	display, err := m.screen.DisplayMatching(bounds)
	if err != nil {
		return snap, fmt.Errorf("display matching: %w", err)
	}

	snap.bounds = bounds
	snap.maximized = maximized
	snap.fullScreen = fullScreen
	snap.normal = !maximized && !minimized && !fullScreen
	snap.display = display.Bounds
	return snap, nil
}

func (m *Manager) hostCall(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug("window call panicked", "call", what, "error", r)
		}
	}()
	if err := fn(); err != nil {
		m.logger.Debug("window call failed", "call", what, "error", err)
	}
}

func cancelAll(subs []platform.Subscription) {
	for _, s := range subs {
		if s != nil {
			s.Cancel()
		}
	}
}

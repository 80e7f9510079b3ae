package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventKind identifies the structure events a caller can subscribe to.
type EventKind int

const (
	// EventResize fires when a ConfigureNotify changes the window size.
	EventResize EventKind = iota
	// EventMove fires when a ConfigureNotify changes the window position.
	EventMove
	// EventUnmap fires when the window is withdrawn but still exists.
	EventUnmap
	// EventDestroy fires once the window is gone.
	EventDestroy
)

type geometry struct {
	x, y, w, h int
}

// watcher fans a single set of xevent callbacks out to many subscribers.
type watcher struct {
	last     geometry
	nextID   int
	handlers map[EventKind]map[int]func()
}

// Subscribe registers fn for kind on windowID. The returned cancel func is
// idempotent; the last cancel for a window detaches its xevent callbacks.
// Callbacks run on the EventLoop goroutine in subscription order.
func (c *Connection) Subscribe(windowID xproto.Window, kind EventKind, fn func()) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.watchers[windowID]
	if !ok {
		var err error
		w, err = c.attach(windowID)
		if err != nil {
			return nil, err
		}
		c.watchers[windowID] = w
	}

	id := w.nextID
	w.nextID++
	if w.handlers[kind] == nil {
		w.handlers[kind] = make(map[int]func())
	}
	w.handlers[kind][id] = fn

	cancelled := false
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cancelled {
			return
		}
		cancelled = true
		delete(w.handlers[kind], id)
		if c.watchers[windowID] == w && w.empty() {
			delete(c.watchers, windowID)
			xevent.Detach(c.XUtil, windowID)
		}
	}, nil
}

// attach must be called with c.mu held.
func (c *Connection) attach(windowID xproto.Window) (*watcher, error) {
	x, y, width, height, err := c.GetWindowGeometry(windowID)
	if err != nil {
		return nil, err
	}
	if err := xwindow.New(c.XUtil, windowID).Listen(xproto.EventMaskStructureNotify); err != nil {
		return nil, fmt.Errorf("failed to listen on window %d: %w", windowID, err)
	}

	w := &watcher{
		last:     geometry{x: x, y: y, w: width, h: height},
		handlers: make(map[EventKind]map[int]func()),
	}

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		c.handleConfigure(windowID, w)
	}).Connect(c.XUtil, windowID)
	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		c.dispatch(w, EventUnmap)
	}).Connect(c.XUtil, windowID)
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		c.dispatch(w, EventDestroy)
	}).Connect(c.XUtil, windowID)

	return w, nil
}

// handleConfigure re-reads root-relative geometry because event coordinates
// are parent-relative for reparented windows.
func (c *Connection) handleConfigure(windowID xproto.Window, w *watcher) {
	x, y, width, height, err := c.GetWindowGeometry(windowID)
	if err != nil {
		return
	}

	c.mu.Lock()
	prev := w.last
	w.last = geometry{x: x, y: y, w: width, h: height}
	c.mu.Unlock()

	if prev.w != width || prev.h != height {
		c.dispatch(w, EventResize)
	}
	if prev.x != x || prev.y != y {
		c.dispatch(w, EventMove)
	}
}

func (c *Connection) dispatch(w *watcher, kind EventKind) {
	c.mu.Lock()
	ids := make([]int, 0, len(w.handlers[kind]))
	for id := range w.handlers[kind] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, w.handlers[kind][id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (w *watcher) empty() bool {
	for _, hs := range w.handlers {
		if len(hs) > 0 {
			return false
		}
	}
	return true
}

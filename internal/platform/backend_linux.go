//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/winstate/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11
// connection. An empty display uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, err
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// Displays returns all active displays ordered by ID.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// PrimaryDisplay returns the RandR primary display, or the first display when
// no primary output is configured.
func (b *LinuxBackend) PrimaryDisplay() (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	d, ok := PrimaryOf(displays)
	if !ok {
		return Display{}, fmt.Errorf("no displays found")
	}
	return d, nil
}

// DisplayMatching returns the display that most closely intersects r.
func (b *LinuxBackend) DisplayMatching(r Rect) (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	d, ok := MatchDisplay(displays, r)
	if !ok {
		return Display{}, fmt.Errorf("no displays found")
	}
	return d, nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// ListWindows returns the managed top-level windows.
func (b *LinuxBackend) ListWindows() ([]WindowInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	clients, err := conn.ListClients()
	if err != nil {
		return nil, err
	}
	out := make([]WindowInfo, 0, len(clients))
	for _, c := range clients {
		out = append(out, WindowInfo{ID: WindowID(c.ID), Title: c.Title, Class: c.Class})
	}
	return out, nil
}

// FindWindow returns the first managed window whose title contains title.
func (b *LinuxBackend) FindWindow(title string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	id, err := conn.FindWindowByTitle(title)
	if err != nil {
		return 0, err
	}
	return WindowID(id), nil
}

// Window returns a handle to an existing top-level window.
func (b *LinuxBackend) Window(id WindowID) (Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	if _, _, _, _, err := conn.GetWindowGeometry(xproto.Window(id)); err != nil {
		return nil, err
	}
	return &LinuxWindow{conn: conn, id: xproto.Window(id)}, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	bounds := Rect{
		X:      m.X,
		Y:      m.Y,
		Width:  m.Width,
		Height: m.Height,
	}
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Bounds:  bounds,
		Usable:  bounds,
		Primary: m.Primary,
	}
}

// LinuxWindow adapts an X11 client window to the Window interface.
// UnmapNotify is reported as close and DestroyNotify as closed.
type LinuxWindow struct {
	conn *x11.Connection
	id   xproto.Window
}

var _ Window = (*LinuxWindow)(nil)

// ID returns the X11 window id.
func (w *LinuxWindow) ID() WindowID {
	return WindowID(w.id)
}

func (w *LinuxWindow) Bounds() (Rect, error) {
	x, y, width, height, err := w.conn.GetWindowGeometry(w.id)
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

func (w *LinuxWindow) IsMaximized() (bool, error) {
	ws, err := w.conn.GetWindowState(w.id)
	return ws.Maximized, err
}

func (w *LinuxWindow) IsMinimized() (bool, error) {
	ws, err := w.conn.GetWindowState(w.id)
	return ws.Minimized, err
}

func (w *LinuxWindow) IsFullScreen() (bool, error) {
	ws, err := w.conn.GetWindowState(w.id)
	return ws.Fullscreen, err
}

func (w *LinuxWindow) Maximize() error {
	return w.conn.MaximizeWindow(w.id)
}

func (w *LinuxWindow) SetFullScreen(fullScreen bool) error {
	return w.conn.SetFullscreen(w.id, fullScreen)
}

func (w *LinuxWindow) OnResize(fn func()) Subscription { return w.subscribe(x11.EventResize, fn) }
func (w *LinuxWindow) OnMove(fn func()) Subscription   { return w.subscribe(x11.EventMove, fn) }
func (w *LinuxWindow) OnClose(fn func()) Subscription  { return w.subscribe(x11.EventUnmap, fn) }
func (w *LinuxWindow) OnClosed(fn func()) Subscription { return w.subscribe(x11.EventDestroy, fn) }

// subscribe returns a no-op handle when the window can no longer be watched;
// there is nothing left to observe in that case.
func (w *LinuxWindow) subscribe(kind x11.EventKind, fn func()) Subscription {
	cancel, err := w.conn.Subscribe(w.id, kind, fn)
	if err != nil {
		return SubscriptionFunc(nil)
	}
	return SubscriptionFunc(cancel)
}

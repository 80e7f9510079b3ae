package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Bounds  Rect   `json:"bounds"`
	Usable  Rect   `json:"usable"`
	Primary bool   `json:"primary"`
}

// WindowInfo identifies a managed top-level window.
type WindowInfo struct {
	ID    WindowID `json:"id"`
	Title string   `json:"title"`
	Class string   `json:"class"`
}

// Screen answers questions about the currently attached displays.
type Screen interface {
	// Displays enumerates all attached displays.
	Displays() ([]Display, error)
	// PrimaryDisplay returns the primary display.
	PrimaryDisplay() (Display, error)
	// DisplayMatching returns the display that most closely intersects r.
	DisplayMatching(r Rect) (Display, error)
}

// Subscription is a handle returned by an event registration.
// Cancel is idempotent.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}

// Window is the host capability a managed top-level window exposes.
// Query methods may fail once the window is closing or destroyed.
type Window interface {
	Bounds() (Rect, error)
	IsMaximized() (bool, error)
	IsMinimized() (bool, error)
	IsFullScreen() (bool, error)

	Maximize() error
	SetFullScreen(fullScreen bool) error

	OnResize(fn func()) Subscription
	OnMove(fn func()) Subscription
	OnClose(fn func()) Subscription
	OnClosed(fn func()) Subscription
}

// Backend abstracts window-system operations used by the command line tools.
type Backend interface {
	Screen
	Window(id WindowID) (Window, error)
	ActiveWindow() (WindowID, error)
	MoveResize(windowID WindowID, bounds Rect) error
}

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// _NET_WM_STATE client message actions.
const (
	stateRemove = 0
	stateAdd    = 1
)

const (
	stateMaxHorz    = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateHidden     = "_NET_WM_STATE_HIDDEN"
	stateFullscreen = "_NET_WM_STATE_FULLSCREEN"
)

// WindowState summarizes the EWMH presentation flags of a window.
type WindowState struct {
	Maximized  bool
	Minimized  bool
	Fullscreen bool
}

// GetWindowGeometry returns the window's root-relative position and size.
func (c *Connection) GetWindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry of window %d: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates of window %d: %w", windowID, err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// GetWindowState reads _NET_WM_STATE. Both maximized atoms must be set for the
// window to count as maximized.
func (c *Connection) GetWindowState(windowID xproto.Window) (WindowState, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		// A window that never had _NET_WM_STATE set is in normal mode, but
		// a destroyed window must still report the failure.
		if _, gerr := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply(); gerr != nil {
			return WindowState{}, fmt.Errorf("failed to get state of window %d: %w", windowID, gerr)
		}
		return WindowState{}, nil
	}

	var ws WindowState
	hasMaxH, hasMaxV := false, false
	for _, state := range states {
		switch state {
		case stateMaxHorz:
			hasMaxH = true
		case stateMaxVert:
			hasMaxV = true
		case stateHidden:
			ws.Minimized = true
		case stateFullscreen:
			ws.Fullscreen = true
		}
	}
	ws.Maximized = hasMaxH && hasMaxV
	return ws, nil
}

// MaximizeWindow asks the window manager to maximize a window in both directions.
func (c *Connection) MaximizeWindow(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, stateMaxHorz); err != nil {
		return fmt.Errorf("failed to maximize window %d: %w", windowID, err)
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, stateMaxVert); err != nil {
		return fmt.Errorf("failed to maximize window %d: %w", windowID, err)
	}
	return nil
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreen(windowID xproto.Window, fullscreen bool) error {
	action := stateRemove
	if fullscreen {
		action = stateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, stateFullscreen); err != nil {
		return fmt.Errorf("failed to set fullscreen on window %d: %w", windowID, err)
	}
	return nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// First, check if window is maximized and unmaximize it
	if err := c.unmaximizeWindow(windowID); err != nil {
		// Log but don't fail - some windows might not support this
	}

	// Create xwindow wrapper
	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)

	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
		return nil
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	ws, err := c.GetWindowState(windowID)
	if err != nil {
		return err
	}
	if !ws.Maximized {
		return nil
	}
	ewmh.WmStateReq(c.XUtil, windowID, stateRemove, stateMaxHorz)
	ewmh.WmStateReq(c.XUtil, windowID, stateRemove, stateMaxVert)
	return nil
}

// GetActiveWindow returns the window that currently has focus.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

package mcp

import "github.com/1broseidon/winstate/internal/platform"

// GetWindowStateInput is the input for the get_window_state tool.
type GetWindowStateInput struct {
	File string `json:"file,omitempty" jsonschema:"State file name inside the configured directory (default: the configured file)"`
}

// GetWindowStateOutput is the output for the get_window_state tool.
type GetWindowStateOutput struct {
	Path     string        `json:"path"`
	Saved    bool          `json:"saved"`
	Outcome  string        `json:"outcome"`
	Restored GeometryInfo  `json:"restored"`
	Record   *GeometryInfo `json:"record,omitempty"`
}

// GeometryInfo is a flattened geometry suitable for JSON tool output.
type GeometryInfo struct {
	X             *int           `json:"x,omitempty"`
	Y             *int           `json:"y,omitempty"`
	Width         *int           `json:"width,omitempty"`
	Height        *int           `json:"height,omitempty"`
	IsMaximized   bool           `json:"is_maximized"`
	IsFullScreen  bool           `json:"is_full_screen"`
	DisplayBounds *platform.Rect `json:"display_bounds,omitempty"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one attached display.
type DisplayInfo struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Bounds  platform.Rect `json:"bounds"`
	Primary bool          `json:"primary"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// CheckGeometryInput is the input for the check_geometry tool.
type CheckGeometryInput struct {
	X             int            `json:"x" jsonschema:"required,Window left edge in screen coordinates"`
	Y             int            `json:"y" jsonschema:"required,Window top edge in screen coordinates"`
	Width         int            `json:"width" jsonschema:"required,Window width in pixels"`
	Height        int            `json:"height" jsonschema:"required,Window height in pixels"`
	IsMaximized   bool           `json:"is_maximized,omitempty" jsonschema:"Whether the window was maximized"`
	IsFullScreen  bool           `json:"is_full_screen,omitempty" jsonschema:"Whether the window was full screen"`
	DisplayBounds *platform.Rect `json:"display_bounds,omitempty" jsonschema:"Bounds of the display the window was saved on"`
}

// CheckGeometryOutput is the output for the check_geometry tool.
type CheckGeometryOutput struct {
	Visible  bool         `json:"visible"`
	Stale    bool         `json:"stale"`
	Outcome  string       `json:"outcome"`
	Restored GeometryInfo `json:"restored"`
}

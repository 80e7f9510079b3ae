// Package windowstate persists and restores a single window's geometry and
// keeps the saved copy in step with live window events.
package windowstate

import (
	"encoding/json"
	"math"

	"github.com/1broseidon/winstate/internal/platform"
)

// Geometry is the in-memory and persisted window state.
// X and Y are nil until a position is known.
type Geometry struct {
	X             *int           `json:"x,omitempty"`
	Y             *int           `json:"y,omitempty"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	IsMaximized   bool           `json:"isMaximized"`
	IsFullScreen  bool           `json:"isFullScreen"`
	DisplayBounds *platform.Rect `json:"displayBounds,omitempty"`
}

// Clone returns a deep copy so callers cannot alias the manager's state.
func (g Geometry) Clone() Geometry {
	out := g
	if g.X != nil {
		out.X = intPtr(*g.X)
	}
	if g.Y != nil {
		out.Y = intPtr(*g.Y)
	}
	if g.DisplayBounds != nil {
		db := *g.DisplayBounds
		out.DisplayBounds = &db
	}
	return out
}

// Bounds returns the window rectangle when a position is known.
func (g Geometry) Bounds() (platform.Rect, bool) {
	if g.X == nil || g.Y == nil {
		return platform.Rect{}, false
	}
	return platform.Rect{X: *g.X, Y: *g.Y, Width: g.Width, Height: g.Height}, true
}

// Record is a saved geometry as read back from storage. Decoding never fails
// on individual fields: a value of the wrong JSON type is simply absent.
type Record struct {
	X             *int
	Y             *int
	Width         *int
	Height        *int
	IsMaximized   bool
	IsFullScreen  bool
	DisplayBounds *platform.Rect
}

// HasBounds reports whether x and y are present and width and height are
// present and positive.
func (r *Record) HasBounds() bool {
	return r != nil &&
		r.X != nil && r.Y != nil &&
		r.Width != nil && *r.Width > 0 &&
		r.Height != nil && *r.Height > 0
}

func (r *Record) bounds() platform.Rect {
	return platform.Rect{X: *r.X, Y: *r.Y, Width: *r.Width, Height: *r.Height}
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Record{
		X:            intField(fields, "x"),
		Y:            intField(fields, "y"),
		Width:        intField(fields, "width"),
		Height:       intField(fields, "height"),
		IsMaximized:  fields["isMaximized"] == true,
		IsFullScreen: fields["isFullScreen"] == true,
	}

	if db, ok := fields["displayBounds"].(map[string]any); ok {
		x, y := intField(db, "x"), intField(db, "y")
		w, h := intField(db, "width"), intField(db, "height")
		if x != nil && y != nil && w != nil && h != nil {
			r.DisplayBounds = &platform.Rect{X: *x, Y: *y, Width: *w, Height: *h}
		}
	}
	return nil
}

// RecordOf converts a geometry back into the record shape used for validation.
func RecordOf(g Geometry) *Record {
	c := g.Clone()
	return &Record{
		X:             c.X,
		Y:             c.Y,
		Width:         intPtr(c.Width),
		Height:        intPtr(c.Height),
		IsMaximized:   c.IsMaximized,
		IsFullScreen:  c.IsFullScreen,
		DisplayBounds: c.DisplayBounds,
	}
}

// intField returns the value at key if it is an integral JSON number.
func intField(m map[string]any, key string) *int {
	f, ok := m[key].(float64)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	return intPtr(int(f))
}

func intPtr(v int) *int { return &v }

package windowstate

import (
	"fmt"

	"github.com/1broseidon/winstate/internal/platform"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Defaults holds the fallback window size.
type Defaults struct {
	Width  int
	Height int
}

func (d Defaults) normalized() Defaults {
	if d.Width <= 0 {
		d.Width = DefaultWidth
	}
	if d.Height <= 0 {
		d.Height = DefaultHeight
	}
	return d
}

// Topology is a snapshot of the attached displays.
type Topology struct {
	Displays []platform.Display
	Primary  platform.Display
	// Match finds the live display that best matches a rectangle. ok is false
	// when no display can be found.
	Match func(r platform.Rect) (platform.Display, bool)
}

// StaticTopology builds a topology from a fixed display list, matching with
// platform.MatchDisplay.
func StaticTopology(displays ...platform.Display) Topology {
	primary, _ := platform.PrimaryOf(displays)
	return Topology{
		Displays: displays,
		Primary:  primary,
		Match: func(r platform.Rect) (platform.Display, bool) {
			return platform.MatchDisplay(displays, r)
		},
	}
}

// CurrentTopology queries screen for the live topology.
func CurrentTopology(screen platform.Screen) (Topology, error) {
	displays, err := screen.Displays()
	if err != nil {
		return Topology{}, fmt.Errorf("failed to enumerate displays: %w", err)
	}
	primary, err := screen.PrimaryDisplay()
	if err != nil {
		return Topology{}, fmt.Errorf("failed to get primary display: %w", err)
	}
	return Topology{
		Displays: displays,
		Primary:  primary,
		Match: func(r platform.Rect) (platform.Display, bool) {
			d, err := screen.DisplayMatching(r)
			return d, err == nil
		},
	}, nil
}

func (t Topology) hasPrimary() bool {
	return len(t.Displays) > 0 && t.Primary.Bounds.Area() > 0
}

// Outcome describes what reconciliation did with a saved record.
type Outcome int

const (
	// OutcomeNoRecord means nothing was saved; only the size is defaulted.
	OutcomeNoRecord Outcome = iota
	// OutcomeRestored means the record was used as saved.
	OutcomeRestored
	// OutcomeStale means the recorded display no longer exists as saved.
	OutcomeStale
	// OutcomeInvalid means the record had neither bounds nor a maximized or
	// full-screen flag.
	OutcomeInvalid
	// OutcomeOffscreen means a corner of the window landed outside every display.
	OutcomeOffscreen
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoRecord:
		return "no-record"
	case OutcomeRestored:
		return "restored"
	case OutcomeStale:
		return "stale-display"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeOffscreen:
		return "offscreen"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Discarded reports whether the saved record was replaced by defaults.
func (o Outcome) Discarded() bool {
	return o == OutcomeStale || o == OutcomeInvalid || o == OutcomeOffscreen
}

// Reconcile turns a loaded record into a usable geometry for the given
// topology. A nil record yields the default size with no position. A record
// that is stale, invalid or not fully visible is replaced by DefaultGeometry.
func Reconcile(rec *Record, topo Topology, defaults Defaults) (Geometry, Outcome) {
	defaults = defaults.normalized()
	if rec == nil {
		return Geometry{Width: defaults.Width, Height: defaults.Height}, OutcomeNoRecord
	}
	if IsStale(rec, topo) {
		return DefaultGeometry(topo, defaults), OutcomeStale
	}
	return Validate(rec, topo, defaults)
}

// IsStale reports whether rec was saved against a display that is no longer
// attached with exactly the same bounds. Records without displayBounds are
// never stale.
func IsStale(rec *Record, topo Topology) bool {
	if rec == nil || rec.DisplayBounds == nil {
		return false
	}
	if topo.Match == nil {
		return true
	}
	live, ok := topo.Match(*rec.DisplayBounds)
	if !ok {
		return true
	}
	return live.Bounds != *rec.DisplayBounds
}

// Validate applies the structural and visibility checks to rec.
func Validate(rec *Record, topo Topology, defaults Defaults) (Geometry, Outcome) {
	defaults = defaults.normalized()
	if rec == nil || !(rec.HasBounds() || rec.IsMaximized || rec.IsFullScreen) {
		return DefaultGeometry(topo, defaults), OutcomeInvalid
	}

	if rec.HasBounds() && rec.DisplayBounds != nil && !Visible(rec.bounds(), topo.Displays) {
		return DefaultGeometry(topo, defaults), OutcomeOffscreen
	}

	g := Geometry{
		X:            rec.X,
		Y:            rec.Y,
		Width:        defaults.Width,
		Height:       defaults.Height,
		IsMaximized:  rec.IsMaximized,
		IsFullScreen: rec.IsFullScreen,
	}
	if rec.Width != nil && *rec.Width > 0 {
		g.Width = *rec.Width
	}
	if rec.Height != nil && *rec.Height > 0 {
		g.Height = *rec.Height
	}
	if rec.DisplayBounds != nil {
		db := *rec.DisplayBounds
		g.DisplayBounds = &db
	}
	return g.Clone(), OutcomeRestored
}

// Visible reports whether every corner of r lies on some display. The corners
// may land on different displays, so windows spanning monitors are kept.
func Visible(r platform.Rect, displays []platform.Display) bool {
	for _, corner := range r.Corners() {
		onScreen := false
		for _, d := range displays {
			if d.Bounds.ContainsPoint(corner) {
				onScreen = true
				break
			}
		}
		if !onScreen {
			return false
		}
	}
	return true
}

// DefaultGeometry is the reset state: default size at 0,0 with the primary
// display's bounds recorded.
func DefaultGeometry(topo Topology, defaults Defaults) Geometry {
	defaults = defaults.normalized()
	g := Geometry{
		X:      intPtr(0),
		Y:      intPtr(0),
		Width:  defaults.Width,
		Height: defaults.Height,
	}
	if topo.hasPrimary() {
		db := topo.Primary.Bounds
		g.DisplayBounds = &db
	}
	return g
}

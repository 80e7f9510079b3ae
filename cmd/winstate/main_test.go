package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/windowstate"
)

func TestParseRect(t *testing.T) {
	got, err := parseRect("10, -20,800,600")
	if err != nil {
		t.Fatalf("parseRect: %v", err)
	}
	if want := (platform.Rect{X: 10, Y: -20, Width: 800, Height: 600}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"", "1,2,3", "1,2,3,x", "0,0,0,10", "0,0,10,-1"} {
		if _, err := parseRect(bad); err == nil {
			t.Errorf("parseRect(%q) expected error", bad)
		}
	}
}

func TestParseWindowID(t *testing.T) {
	tests := map[string]platform.WindowID{
		"0x3a00007": 0x3a00007,
		"4194311":   4194311,
	}
	for in, want := range tests {
		got, err := parseWindowID(in)
		if err != nil || got != want {
			t.Errorf("parseWindowID(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"0", "-1", "window", "0x1ffffffff"} {
		if _, err := parseWindowID(bad); err == nil {
			t.Errorf("parseWindowID(%q) expected error", bad)
		}
	}
}

func TestIsStateEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "window-state.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename into place", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"removed", fsnotify.Event{Name: path, Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join(dir, ".window-state-123"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStateEvent(tt.event, path); got != tt.want {
				t.Fatalf("isStateEvent = %v, want %v", got, tt.want)
			}
		})
	}
}

type stubScreen struct {
	displays []platform.Display
}

func (s stubScreen) Displays() ([]platform.Display, error) { return s.displays, nil }

func (s stubScreen) PrimaryDisplay() (platform.Display, error) {
	d, ok := platform.PrimaryOf(s.displays)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

func (s stubScreen) DisplayMatching(r platform.Rect) (platform.Display, error) {
	d, ok := platform.MatchDisplay(s.displays, r)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

func TestCheckRecord(t *testing.T) {
	primary := platform.Rect{Width: 1920, Height: 1080}
	screen := stubScreen{displays: []platform.Display{{Name: "eDP-1", Bounds: primary, Primary: true}}}
	defaults := windowstate.Defaults{Width: 640, Height: 480}

	rect, _ := parseRect("1500,900,800,600")
	rec := windowstate.RecordOf(windowstate.Geometry{X: &rect.X, Y: &rect.Y, Width: rect.Width, Height: rect.Height})
	rec.DisplayBounds = &primary

	res, err := checkRecord(rec, screen, defaults)
	if err != nil {
		t.Fatalf("checkRecord: %v", err)
	}
	if res.Visible || res.Stale || res.Outcome != "offscreen" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Restored.Width != 640 || res.Restored.Height != 480 || *res.Restored.X != 0 {
		t.Fatalf("expected reset to defaults, got %+v", res.Restored)
	}

	rect, _ = parseRect("100,100,800,600")
	rec = windowstate.RecordOf(windowstate.Geometry{X: &rect.X, Y: &rect.Y, Width: rect.Width, Height: rect.Height})
	res, err = checkRecord(rec, screen, defaults)
	if err != nil {
		t.Fatalf("checkRecord: %v", err)
	}
	if !res.Visible || res.Outcome != "restored" || *res.Restored.X != 100 {
		t.Fatalf("unexpected result %+v", res)
	}
}

type moveRecorder struct {
	stubScreen
	moved []platform.Rect
}

func (m *moveRecorder) Window(platform.WindowID) (platform.Window, error) { return nil, nil }
func (m *moveRecorder) ActiveWindow() (platform.WindowID, error)         { return 1, nil }
func (m *moveRecorder) MoveResize(_ platform.WindowID, r platform.Rect) error {
	m.moved = append(m.moved, r)
	return nil
}

type boundsOnlyWindow struct {
	platform.Window
	bounds platform.Rect
}

func (w boundsOnlyWindow) Bounds() (platform.Rect, error) { return w.bounds, nil }

func TestApplyGeometry_WithoutPositionKeepsCurrentOrigin(t *testing.T) {
	backend := &moveRecorder{}
	win := boundsOnlyWindow{bounds: platform.Rect{X: 40, Y: 50, Width: 300, Height: 200}}

	if err := applyGeometry(backend, 7, win, windowstate.Geometry{Width: 800, Height: 600}); err != nil {
		t.Fatalf("applyGeometry: %v", err)
	}
	x, y := 5, 6
	if err := applyGeometry(backend, 7, win, windowstate.Geometry{X: &x, Y: &y, Width: 1024, Height: 768}); err != nil {
		t.Fatalf("applyGeometry: %v", err)
	}

	want := []platform.Rect{
		{X: 40, Y: 50, Width: 800, Height: 600},
		{X: 5, Y: 6, Width: 1024, Height: 768},
	}
	if len(backend.moved) != 2 || backend.moved[0] != want[0] || backend.moved[1] != want[1] {
		t.Fatalf("got moves %v, want %v", backend.moved, want)
	}
}

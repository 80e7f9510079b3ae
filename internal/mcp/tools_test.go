package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
)

type staticScreen struct {
	displays []platform.Display
}

func (s staticScreen) Displays() ([]platform.Display, error) { return s.displays, nil }

func (s staticScreen) PrimaryDisplay() (platform.Display, error) {
	d, ok := platform.PrimaryOf(s.displays)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

func (s staticScreen) DisplayMatching(r platform.Rect) (platform.Display, error) {
	d, ok := platform.MatchDisplay(s.displays, r)
	if !ok {
		return platform.Display{}, errors.New("no displays")
	}
	return d, nil
}

var (
	primary   = platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	secondary = platform.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}
)

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Path = dir
	cfg.DefaultWidth = 500
	cfg.DefaultHeight = 300
	screen := staticScreen{displays: []platform.Display{
		{ID: 0, Name: "eDP-1", Bounds: primary, Primary: true},
		{ID: 1, Name: "DP-1", Bounds: secondary},
	}}
	s, err := NewServer(cfg, screen, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func TestNewServer_RequiresScreen(t *testing.T) {
	if _, err := NewServer(config.DefaultConfig(), nil, nil); err == nil {
		t.Fatalf("expected error without a screen")
	}
}

func TestHandleGetWindowState_NoFile(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	_, out, err := s.handleGetWindowState(context.Background(), nil, GetWindowStateInput{})
	if err != nil {
		t.Fatalf("handleGetWindowState: %v", err)
	}
	if out.Saved || out.Record != nil {
		t.Fatalf("expected no saved record, got %+v", out)
	}
	if out.Outcome != "no-record" {
		t.Fatalf("expected no-record, got %q", out.Outcome)
	}
	if *out.Restored.Width != 500 || *out.Restored.Height != 300 {
		t.Fatalf("expected defaults, got %+v", out.Restored)
	}
}

func TestHandleGetWindowState_StaleFile(t *testing.T) {
	dir := t.TempDir()
	data := `{"x":-2000,"y":-1000,"width":800,"height":600,"displayBounds":{"x":-2560,"y":-480,"width":2560,"height":1440}}`
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := newTestServer(t, dir)

	_, out, err := s.handleGetWindowState(context.Background(), nil, GetWindowStateInput{File: "custom.json"})
	if err != nil {
		t.Fatalf("handleGetWindowState: %v", err)
	}
	if !out.Saved || out.Record == nil || *out.Record.X != -2000 {
		t.Fatalf("expected saved record echoed, got %+v", out)
	}
	if out.Outcome != "stale-display" {
		t.Fatalf("expected stale-display, got %q", out.Outcome)
	}
	if *out.Restored.X != 0 || *out.Restored.Y != 0 || *out.Restored.DisplayBounds != primary {
		t.Fatalf("expected reset onto primary display, got %+v", out.Restored)
	}
}

func TestHandleGetWindowState_RejectsNestedFile(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	if _, _, err := s.handleGetWindowState(context.Background(), nil, GetWindowStateInput{File: "../x.json"}); err == nil {
		t.Fatalf("expected error for nested file name")
	}
}

func TestHandleListDisplays(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("handleListDisplays: %v", err)
	}
	if len(out.Displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(out.Displays))
	}
	if !out.Displays[0].Primary || out.Displays[1].Primary {
		t.Fatalf("expected only the first display primary, got %+v", out.Displays)
	}
}

func TestHandleCheckGeometry(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	tests := []struct {
		name    string
		in      CheckGeometryInput
		visible bool
		stale   bool
		outcome string
	}{
		{
			name:    "on secondary display",
			in:      CheckGeometryInput{X: 2000, Y: 1100, Width: 800, Height: 300, DisplayBounds: &secondary},
			visible: true,
			outcome: "restored",
		},
		{
			name:    "past the right edge",
			in:      CheckGeometryInput{X: 4000, Y: 0, Width: 800, Height: 300, DisplayBounds: &secondary},
			visible: false,
			outcome: "offscreen",
		},
		{
			name:    "unknown display",
			in:      CheckGeometryInput{X: 10, Y: 10, Width: 800, Height: 300, DisplayBounds: &platform.Rect{Width: 1280, Height: 720}},
			visible: true,
			stale:   true,
			outcome: "stale-display",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleCheckGeometry(context.Background(), nil, tt.in)
			if err != nil {
				t.Fatalf("handleCheckGeometry: %v", err)
			}
			if out.Visible != tt.visible || out.Stale != tt.stale || out.Outcome != tt.outcome {
				t.Fatalf("got visible=%v stale=%v outcome=%s, want visible=%v stale=%v outcome=%s",
					out.Visible, out.Stale, out.Outcome, tt.visible, tt.stale, tt.outcome)
			}
		})
	}
}

func TestHandleCheckGeometry_RejectsEmptySize(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	if _, _, err := s.handleCheckGeometry(context.Background(), nil, CheckGeometryInput{Width: 0, Height: 10}); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

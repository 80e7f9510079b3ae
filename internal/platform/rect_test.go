package platform

import "testing"

func TestRectContainsPoint_InclusiveEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Point{0, 0}, true},
		{"bottom-right edge", Point{1920, 1080}, true},
		{"inside", Point{100, 100}, true},
		{"right of edge", Point{1921, 500}, false},
		{"above", Point{10, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectCorners(t *testing.T) {
	got := Rect{X: 10, Y: 20, Width: 100, Height: 50}.Corners()
	want := [4]Point{{10, 20}, {10, 70}, {110, 20}, {110, 70}}
	if got != want {
		t.Fatalf("Corners() = %v, want %v", got, want)
	}
}

func TestMatchDisplay_LargestIntersection(t *testing.T) {
	left := Display{ID: 0, Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	right := Display{ID: 1, Bounds: Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}}

	// Mostly on the right display.
	got, ok := MatchDisplay([]Display{left, right}, Rect{X: 1800, Y: 100, Width: 800, Height: 600})
	if !ok || got.ID != 1 {
		t.Fatalf("expected right display, got %+v (ok=%v)", got, ok)
	}
}

func TestMatchDisplay_NearestWhenDisjoint(t *testing.T) {
	left := Display{ID: 0, Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	right := Display{ID: 1, Bounds: Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}}

	got, ok := MatchDisplay([]Display{left, right}, Rect{X: -3000, Y: 0, Width: 100, Height: 100})
	if !ok || got.ID != 0 {
		t.Fatalf("expected left display, got %+v (ok=%v)", got, ok)
	}
}

func TestMatchDisplay_Empty(t *testing.T) {
	if _, ok := MatchDisplay(nil, Rect{Width: 1, Height: 1}); ok {
		t.Fatalf("expected no match for empty display list")
	}
}

func TestPrimaryOf(t *testing.T) {
	a := Display{ID: 0}
	b := Display{ID: 1, Primary: true}
	if got, _ := PrimaryOf([]Display{a, b}); got.ID != 1 {
		t.Fatalf("expected flagged primary, got %+v", got)
	}
	if got, _ := PrimaryOf([]Display{a}); got.ID != 0 {
		t.Fatalf("expected first display fallback, got %+v", got)
	}
}

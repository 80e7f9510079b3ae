package platform

import "fmt"

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Corners returns the four corners of r: top-left, bottom-left, top-right, bottom-right.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X, Y: r.Y + r.Height},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
	}
}

// ContainsPoint reports whether p lies within r. Both edges are inclusive, so a
// corner sitting exactly on the right or bottom edge is still inside.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersection returns the overlapping area of r and o, or the zero Rect.
func (r Rect) Intersection(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Area returns Width*Height, or zero for degenerate rectangles.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// MatchDisplay picks the display with the largest intersection with r. When r
// overlaps nothing, the display whose center is closest to r's center wins.
// ok is false only when displays is empty.
func MatchDisplay(displays []Display, r Rect) (Display, bool) {
	if len(displays) == 0 {
		return Display{}, false
	}

	best := -1
	bestArea := 0
	for i, d := range displays {
		if area := d.Bounds.Intersection(r).Area(); area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return displays[best], true
	}

	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	best = 0
	bestDist := -1
	for i, d := range displays {
		dx := d.Bounds.X + d.Bounds.Width/2 - cx
		dy := d.Bounds.Y + d.Bounds.Height/2 - cy
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return displays[best], true
}

// PrimaryOf returns the display flagged primary, falling back to the first one.
func PrimaryOf(displays []Display) (Display, bool) {
	if len(displays) == 0 {
		return Display{}, false
	}
	for _, d := range displays {
		if d.Primary {
			return d, true
		}
	}
	return displays[0], true
}

package geometry

// RectInt is an axis-aligned pixel rectangle with inclusive minimum and
// exclusive maximum edges, matching image.Rectangle conventions.
type RectInt struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent in pixels.
func (r RectInt) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent in pixels.
func (r RectInt) Height() int {
	return r.Y2 - r.Y1
}

// Area returns the enclosed pixel count.
func (r RectInt) Area() int {
	return r.Width() * r.Height()
}

// AspectRatio returns width divided by height, or 0 for a degenerate
// rectangle.
func (r RectInt) AspectRatio() float64 {
	h := r.Height()
	if h <= 0 {
		return 0
	}
	return float64(r.Width()) / float64(h)
}

// Center returns the midpoint, truncated to the pixel grid.
func (r RectInt) Center() PointInt {
	return PointInt{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains reports whether p lies inside r.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// Overlaps reports whether r and other share any area.
func (r RectInt) Overlaps(other RectInt) bool {
	return r.X1 < other.X2 && r.X2 > other.X1 && r.Y1 < other.Y2 && r.Y2 > other.Y1
}

// Union returns the smallest rectangle covering both r and other.
func (r RectInt) Union(other RectInt) RectInt {
	return RectInt{
		X1: minInt(r.X1, other.X1),
		Y1: minInt(r.Y1, other.Y1),
		X2: maxInt(r.X2, other.X2),
		Y2: maxInt(r.Y2, other.Y2),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

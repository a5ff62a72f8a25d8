package geometry

import "math"

// RectRing returns the closed five point ring of an axis-aligned rectangle,
// wound clockwise from the top-left corner. The last point repeats the
// first so the ring satisfies the closed-boundary invariant directly.
func RectRing(x1, y1, x2, y2 float64) []Point2D {
	return []Point2D{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
		{X: x1, Y: y1},
	}
}

// IsClosedRing reports whether pts starts and ends on the same point.
// Rings shorter than four points cannot enclose area and are not closed.
func IsClosedRing(pts []Point2D) bool {
	if len(pts) < 4 {
		return false
	}
	return pts[0] == pts[len(pts)-1]
}

// CloseRing appends the first point when the ring is not already closed.
func CloseRing(pts []Point2D) []Point2D {
	if len(pts) == 0 {
		return pts
	}
	if pts[0] == pts[len(pts)-1] {
		return pts
	}
	return append(pts, pts[0])
}

// PolygonArea returns the absolute area enclosed by the ring using the
// shoelace formula. Open and closed rings are both accepted.
func PolygonArea(pts []Point2D) float64 {
	n := len(pts)
	if n >= 2 && pts[0] == pts[n-1] {
		n--
	}
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// BoundingBox returns the min and max corners covering pts. Both values
// are zero when pts is empty.
func BoundingBox(pts []Point2D) (min, max Point2D) {
	if len(pts) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Centroid returns the arithmetic mean of the ring's distinct points
// (the duplicate closing point is ignored).
func Centroid(pts []Point2D) Point2D {
	n := len(pts)
	if n >= 2 && pts[0] == pts[n-1] {
		n--
	}
	if n == 0 {
		return Point2D{}
	}
	var sx, sy float64
	for _, p := range pts[:n] {
		sx += p.X
		sy += p.Y
	}
	return Point2D{X: sx / float64(n), Y: sy / float64(n)}
}

// PointSegmentDistance returns the shortest distance from p to the line
// segment ab.
func PointSegmentDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(Point2D{X: a.X + t*dx, Y: a.Y + t*dy})
}

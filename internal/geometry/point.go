// Package geometry provides the 2D primitives shared by the detection
// pipeline: points in pixel and normalized coordinate space, axis-aligned
// rectangles, and polygon ring helpers.
package geometry

import "math"

// Point2D is a point in 2D space with floating point coordinates.
// Detection results use the normalized [0,1] coordinate space so geometry
// survives image resizing; intermediate pixel work uses PointInt.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to other.
func (p Point2D) Distance(other Point2D) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the component-wise sum of p and other.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of p and other.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns p with both components multiplied by factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// AngleDegrees returns the angle of the vector from p to other in degrees,
// in (-180, 180], with 0 along +X and positive angles toward +Y.
func (p Point2D) AngleDegrees(other Point2D) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X) * 180 / math.Pi
}

// PointInt is a point on the pixel grid.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts p to floating point coordinates.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance to other.
func (p PointInt) Distance(other PointInt) float64 {
	dx := float64(other.X - p.X)
	dy := float64(other.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

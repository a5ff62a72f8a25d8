package detection

import (
	"math"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// Segment is a wall candidate in processed-pixel coordinates.
//
// Scanline candidates carry only endpoints; the richer detectors also fill
// thickness, a confidence score, and the sketchy flag for strokes whose
// angle wanders away from the axis-aligned ideal.
type Segment struct {
	Start      geometry.PointInt
	End        geometry.PointInt
	Thickness  float64
	Confidence float64
	Sketchy    bool
}

// Length returns the Euclidean endpoint distance in pixels.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// AngleDegrees returns the segment direction in degrees, (-180, 180].
func (s Segment) AngleDegrees() float64 {
	dy := float64(s.End.Y - s.Start.Y)
	dx := float64(s.End.X - s.Start.X)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// Midpoint returns the segment center.
func (s Segment) Midpoint() geometry.Point2D {
	return geometry.Point2D{
		X: float64(s.Start.X+s.End.X) / 2,
		Y: float64(s.Start.Y+s.End.Y) / 2,
	}
}

// IsZero reports a degenerate segment with coincident endpoints.
func (s Segment) IsZero() bool {
	return s.Start == s.End
}

// RoomCandidate is a detected room region before calibration and
// coordinate normalization.
type RoomCandidate struct {
	Bounds     geometry.RectInt
	PixelCount int
	Type       floorplan.RoomType
	Confidence float64
}

// Candidate is one strategy's raw output. Door and window counts are
// estimates; they are never measured directly.
type Candidate struct {
	Rooms       []RoomCandidate
	Walls       []Segment
	DoorCount   int
	WindowCount int
}

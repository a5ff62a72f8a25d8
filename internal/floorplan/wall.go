package floorplan

import (
	"fmt"
	"math"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// WallType classifies a wall segment for extrusion and rendering.
type WallType string

const (
	WallInterior    WallType = "interior"
	WallExterior    WallType = "exterior"
	WallLoadBearing WallType = "load_bearing"
)

// DefaultWallThickness is the assumed thickness in pixels for walls whose
// thickness was not measured (synthesized walls, thin detections).
const DefaultWallThickness = 6.0

// borderTolerance is how close (in normalized units) a wall must lie to
// the plan border to classify as exterior.
const borderTolerance = 0.01

// Wall is one wall segment in the result's coordinate space.
//
// Length and Angle are derived from the endpoints: length is the Euclidean
// distance (real-world feet in finished results), angle is degrees in
// (-180, 180] measured from the positive X axis.
type Wall struct {
	Start     geometry.Point2D `json:"start"`
	End       geometry.Point2D `json:"end"`
	Thickness float64          `json:"thickness"`
	Type      WallType         `json:"type"`
	Length    float64          `json:"length"`
	Angle     float64          `json:"angle"`

	// Confidence is populated by detectors that score their segments;
	// synthesized walls leave it zero.
	Confidence float64 `json:"confidence,omitempty"`
}

// NewWall builds a segment and fills the derived Length and Angle fields
// from the endpoints as given. Assemblers recompute Length after unit
// conversion.
func NewWall(start, end geometry.Point2D, thickness float64, wallType WallType) Wall {
	return Wall{
		Start:     start,
		End:       end,
		Thickness: thickness,
		Type:      wallType,
		Length:    start.Distance(end),
		Angle:     start.AngleDegrees(end),
	}
}

// Key returns a deduplication key that identifies the segment regardless
// of endpoint order. Endpoints are rounded to 3 decimals so walls emitted
// from two adjacent rooms' rings (which traverse the shared edge in
// opposite directions, with float noise) collapse to one key.
func (w Wall) Key() string {
	ax := math.Round(w.Start.X*1000) / 1000
	ay := math.Round(w.Start.Y*1000) / 1000
	bx := math.Round(w.End.X*1000) / 1000
	by := math.Round(w.End.Y*1000) / 1000

	if bx < ax || (bx == ax && by < ay) {
		ax, ay, bx, by = bx, by, ax, ay
	}
	return fmt.Sprintf("%.3f,%.3f-%.3f,%.3f", ax, ay, bx, by)
}

// WallsFromRooms derives wall segments from room boundary rings.
//
// Each ring edge becomes one wall candidate. Edges shared between adjacent
// rooms appear in both rings (traversed in opposite directions) and are
// emitted once, deduplicated by the symmetric Key. Zero-length edges are
// skipped.
//
// Rooms are expected in normalized [0,1] coordinates: edges lying within
// 1% of the plan border classify as exterior, everything else as interior.
// Thickness defaults to DefaultWallThickness (pixels; calibrated by the
// assembler along with every other wall).
func WallsFromRooms(rooms []Room) []Wall {
	seen := make(map[string]struct{})
	var walls []Wall

	for _, room := range rooms {
		ring := room.Boundary
		for i := 0; i+1 < len(ring); i++ {
			start, end := ring[i], ring[i+1]
			if start == end {
				continue
			}

			wall := NewWall(start, end, DefaultWallThickness, classifyEdge(start, end))
			key := wall.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			walls = append(walls, wall)
		}
	}
	return walls
}

// classifyEdge marks edges hugging the normalized plan border as exterior.
func classifyEdge(start, end geometry.Point2D) WallType {
	onBorder := func(a, b float64) bool {
		return (a <= borderTolerance && b <= borderTolerance) ||
			(a >= 1-borderTolerance && b >= 1-borderTolerance)
	}
	if onBorder(start.X, end.X) || onBorder(start.Y, end.Y) {
		return WallExterior
	}
	return WallInterior
}

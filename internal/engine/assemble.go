package engine

import (
	"math"

	"github.com/floorsight/floorplan-mcp/internal/calibrate"
	"github.com/floorsight/floorplan-mcp/internal/detection"
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
	"github.com/floorsight/floorplan-mcp/internal/synth"
)

// Wall classification thresholds in processed-pixel units. A wall
// touching the sheet margin is the building envelope; an unusually thick
// stroke inside the plan reads as load-bearing.
const (
	exteriorBorderPx       = 10
	loadBearingThicknessPx = 15.0
)

// assembleMeasured converts a strategy candidate into the result space:
// coordinates normalized to [0,1] and rounded to 4 decimals, areas and
// lengths calibrated to feet, confidences clamped.
func assembleMeasured(method string, cand *detection.Candidate, g *imaging.Grayscale, cal calibrate.Calibration) *floorplan.DetectionResult {
	w := float64(g.Width)
	h := float64(g.Height)

	rooms := make([]floorplan.Room, 0, len(cand.Rooms))
	for _, rc := range cand.Rooms {
		rooms = append(rooms, floorplan.Room{
			Type:       rc.Type,
			Area:       cal.Area(float64(rc.PixelCount)),
			Confidence: clamp01(rc.Confidence),
			Boundary: geometry.RectRing(
				round4(float64(rc.Bounds.X1)/w),
				round4(float64(rc.Bounds.Y1)/h),
				round4(float64(rc.Bounds.X2)/w),
				round4(float64(rc.Bounds.Y2)/h),
			),
		})
	}

	walls := make([]floorplan.Wall, 0, len(cand.Walls))
	for _, seg := range cand.Walls {
		start := geometry.Point2D{
			X: round4(float64(seg.Start.X) / w),
			Y: round4(float64(seg.Start.Y) / h),
		}
		end := geometry.Point2D{
			X: round4(float64(seg.End.X) / w),
			Y: round4(float64(seg.End.Y) / h),
		}
		if start == end {
			continue
		}

		thickness := seg.Thickness
		if thickness <= 0 {
			thickness = floorplan.DefaultWallThickness
		}

		walls = append(walls, floorplan.Wall{
			Start:     start,
			End:       end,
			Thickness: cal.Length(thickness),
			Type:      classifyWall(seg, thickness, g.Width, g.Height),
			Length:    cal.Length(seg.Length()),
			// Angle comes from pixel space: normalized deltas distort
			// direction whenever width != height.
			Angle:      seg.AngleDegrees(),
			Confidence: clamp01(seg.Confidence),
		})
	}

	return finishResult(method, false, rooms, walls, cand.DoorCount, cand.WindowCount, g, cal)
}

// assembleFallback converts a synthesized layout, already in normalized
// coordinates, into the result space. Areas are derived from the rings
// and the processed dimensions rather than trusted from the layout.
func assembleFallback(layout synth.Layout, g *imaging.Grayscale, cal calibrate.Calibration) *floorplan.DetectionResult {
	w := float64(g.Width)
	h := float64(g.Height)

	rooms := make([]floorplan.Room, 0, len(layout.Rooms))
	for _, room := range layout.Rooms {
		room.Area = cal.Area(geometry.PolygonArea(room.Boundary) * w * h)
		room.Confidence = clamp01(room.Confidence)
		for i, p := range room.Boundary {
			room.Boundary[i] = geometry.Point2D{X: round4(p.X), Y: round4(p.Y)}
		}
		rooms = append(rooms, room)
	}

	walls := make([]floorplan.Wall, 0, len(layout.Walls))
	for _, wall := range layout.Walls {
		dx := (wall.End.X - wall.Start.X) * w
		dy := (wall.End.Y - wall.Start.Y) * h
		wall.Length = cal.Length(math.Hypot(dx, dy))
		wall.Angle = math.Atan2(dy, dx) * 180 / math.Pi
		wall.Thickness = cal.Length(wall.Thickness)
		wall.Start = geometry.Point2D{X: round4(wall.Start.X), Y: round4(wall.Start.Y)}
		wall.End = geometry.Point2D{X: round4(wall.End.X), Y: round4(wall.End.Y)}
		if wall.Start == wall.End {
			continue
		}
		walls = append(walls, wall)
	}

	return finishResult("fallback", true, rooms, walls, layout.DoorCount, layout.WindowCount, g, cal)
}

// finishResult fills the shared result fields and derives the summary.
func finishResult(method string, fallback bool, rooms []floorplan.Room, walls []floorplan.Wall, doors, windows int, g *imaging.Grayscale, cal calibrate.Calibration) *floorplan.DetectionResult {
	res := &floorplan.DetectionResult{
		DoorCount:     doors,
		WindowCount:   windows,
		DetailedRooms: rooms,
		DetailedWalls: walls,
		Method:        method,
		Fallback:      fallback,
		ScaleFactor:   cal.FeetPerPixel,
		ScaleVerified: cal.Verified,
		ImageWidth:    g.Width,
		ImageHeight:   g.Height,
		RoomAdjacency: floorplan.RoomAdjacency(rooms),
	}
	res.Recompute()
	return res
}

// classifyWall types a measured segment. Envelope contact wins over
// thickness: a thick stroke on the margin is still the exterior shell.
func classifyWall(seg detection.Segment, thickness float64, width, height int) floorplan.WallType {
	if nearBorder(seg.Start, width, height) || nearBorder(seg.End, width, height) {
		return floorplan.WallExterior
	}
	if thickness > loadBearingThicknessPx {
		return floorplan.WallLoadBearing
	}
	return floorplan.WallInterior
}

func nearBorder(p geometry.PointInt, width, height int) bool {
	return p.X < exteriorBorderPx || p.Y < exteriorBorderPx ||
		p.X > width-exteriorBorderPx || p.Y > height-exteriorBorderPx
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package detection

import (
	"math"
	"sort"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// HoughOptions tunes straight-line extraction from an edge map.
type HoughOptions struct {
	// MinLength is the shortest accepted line in pixels. Default 30.
	MinLength int

	// MaxLines caps the output, keeping the strongest peaks. Default 50.
	MaxLines int
}

func (o *HoughOptions) fillDefaults() {
	if o.MinLength <= 0 {
		o.MinLength = 30
	}
	if o.MaxLines <= 0 {
		o.MaxLines = 50
	}
}

// HoughSegments extracts wall candidates from an edge map using the Hough
// line transform.
//
// Edge pixels vote in (rho, theta) space at 1° resolution; local maxima
// above half the minimum length become candidate lines. Each peak is
// traced back through the edge map to find its actual endpoints (pixels
// within 2px of the ideal line), so output segments are bounded strokes,
// not infinite lines.
//
// Lines are kept only when their angle lands near a plausible wall
// orientation (horizontal, vertical, or 45° diagonal, each ±15°); the
// angular deviation sets the confidence, and strokes below 0.8 are flagged
// sketchy. Thickness is estimated by sampling perpendicular to the stroke
// at its midpoint.
func HoughSegments(edges *imaging.EdgeMap, opts HoughOptions) []Segment {
	opts.fillDefaults()

	width, height := edges.Width, edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			if !edges.On[row+x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find peaks in the accumulator
	type peak struct {
		rho   int
		theta int
		votes int
	}
	var peaks []peak
	threshold := opts.MinLength / 2

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > accumulator[rhoIdx][theta] {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	var segments []Segment

	for _, p := range peaks {
		if len(segments) >= opts.MaxLines {
			break
		}

		angle := float64(p.theta) * math.Pi / 180.0
		rho := float64(p.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Trace edge pixels lying on this line
		var linePoints []geometry.PointInt
		for y := 0; y < height; y++ {
			row := y * width
			for x := 0; x < width; x++ {
				if !edges.On[row+x] {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < 2.0 {
					linePoints = append(linePoints, geometry.PointInt{X: x, Y: y})
				}
			}
		}
		if len(linePoints) < opts.MinLength {
			continue
		}

		// Endpoints are the extreme projections along the line direction
		var start, end geometry.PointInt
		minProj, maxProj := math.MaxFloat64, -math.MaxFloat64
		for _, pt := range linePoints {
			proj := -float64(pt.X)*sinA + float64(pt.Y)*cosA
			if proj < minProj {
				minProj = proj
				start = pt
			}
			if proj > maxProj {
				maxProj = proj
				end = pt
			}
		}

		seg := Segment{Start: start, End: end}
		if seg.Length() < float64(opts.MinLength) {
			continue
		}

		confidence, ok := classifyWallAngle(seg.AngleDegrees())
		if !ok {
			continue
		}
		seg.Confidence = confidence
		seg.Sketchy = confidence < 0.8
		seg.Thickness = estimateThickness(edges, seg)

		segments = append(segments, seg)
	}

	return segments
}

// classifyWallAngle scores how close a stroke direction lies to a wall
// orientation. Horizontal and vertical walls tolerate ±15° of wobble with
// confidence max(0.5, 1-dev/15); diagonals (45°/135°) tolerate ±10° eased
// over 20 with a lower floor, since diagonal walls are rarer and diagonal
// noise commoner. Returns ok=false for strokes near no orientation.
func classifyWallAngle(angleDeg float64) (confidence float64, ok bool) {
	a := math.Mod(angleDeg, 180)
	if a < 0 {
		a += 180
	}

	switch {
	case a < 15 || a > 165:
		dev := a
		if a > 165 {
			dev = 180 - a
		}
		return math.Max(0.5, 1-dev/15), true
	case a >= 75 && a <= 105:
		dev := math.Abs(a - 90)
		return math.Max(0.5, 1-dev/15), true
	case a >= 35 && a <= 55:
		dev := math.Abs(a - 45)
		return math.Max(0.4, 1-dev/20), true
	case a >= 125 && a <= 145:
		dev := math.Abs(a - 135)
		return math.Max(0.4, 1-dev/20), true
	default:
		return 0, false
	}
}

// estimateThickness samples the edge map perpendicular to the stroke at
// its midpoint and counts hits within ±10px, clamped to the plausible
// wall range [3, 25].
func estimateThickness(edges *imaging.EdgeMap, s Segment) float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 3
	}

	perpX := -dy / length
	perpY := dx / length
	mid := s.Midpoint()

	hits := 0
	for d := -10; d <= 10; d++ {
		px := int(mid.X + float64(d)*perpX)
		py := int(mid.Y + float64(d)*perpY)
		if edges.At(px, py) {
			hits++
		}
	}

	if hits < 3 {
		return 3
	}
	if hits > 25 {
		return 25
	}
	return float64(hits)
}

// maxGroupSpacing is how far apart two parallel strokes may sit and still
// be treated as the two faces of one thick wall. Longer walls are drawn
// thicker, so the allowance scales with average length.
func maxGroupSpacing(avgLength float64) float64 {
	switch {
	case avgLength > 150:
		return 50
	case avgLength > 50:
		return 30
	default:
		return 15
	}
}

// ConsolidateParallel collapses groups of near-parallel, nearby strokes
// into single walls.
//
// A thick wall drawn as two parallel strokes (or rescanned at several
// thresholds) yields multiple Hough lines. Strokes group transitively
// when their angles differ by at most 15° and their midpoints sit between
// 1px and the length-scaled spacing allowance apart. Each group collapses
// to its longest member with confidence boosted 20% (capped at 1.0) and
// thickness widened to the group's midpoint spread.
func ConsolidateParallel(segments []Segment) []Segment {
	if len(segments) < 2 {
		return segments
	}

	avgLength := 0.0
	for _, s := range segments {
		avgLength += s.Length()
	}
	avgLength /= float64(len(segments))
	spacing := maxGroupSpacing(avgLength)

	// Transitive grouping by union-find
	parent := make([]int, len(segments))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			if parallelPair(segments[i], segments[j], spacing) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := range segments {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	consolidated := make([]Segment, 0, len(groups))
	for _, members := range groups {
		if len(members) == 1 {
			consolidated = append(consolidated, segments[members[0]])
			continue
		}

		longest := segments[members[0]]
		for _, idx := range members[1:] {
			if segments[idx].Length() > longest.Length() {
				longest = segments[idx]
			}
		}

		spread := 0.0
		for _, a := range members {
			for _, b := range members {
				if d := segments[a].Midpoint().Distance(segments[b].Midpoint()); d > spread {
					spread = d
				}
			}
		}

		out := longest
		out.Confidence = math.Min(1.0, longest.Confidence*1.2)
		if spread > out.Thickness {
			out.Thickness = math.Min(spread, 25)
		}
		consolidated = append(consolidated, out)
	}

	// Deterministic order: longest first, ties by position
	sort.Slice(consolidated, func(i, j int) bool {
		li, lj := consolidated[i].Length(), consolidated[j].Length()
		if li != lj {
			return li > lj
		}
		if consolidated[i].Start.Y != consolidated[j].Start.Y {
			return consolidated[i].Start.Y < consolidated[j].Start.Y
		}
		return consolidated[i].Start.X < consolidated[j].Start.X
	})
	return consolidated
}

// parallelPair reports whether two strokes look like faces of one wall.
func parallelPair(a, b Segment, spacing float64) bool {
	angleDiff := math.Abs(normalizeAngle(a.AngleDegrees()) - normalizeAngle(b.AngleDegrees()))
	if angleDiff > 90 {
		angleDiff = 180 - angleDiff
	}
	if angleDiff > 15 {
		return false
	}

	d := a.Midpoint().Distance(b.Midpoint())
	return d >= 1 && d <= spacing
}

// normalizeAngle folds a direction into [0, 180).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 180)
	if a < 0 {
		a += 180
	}
	return a
}

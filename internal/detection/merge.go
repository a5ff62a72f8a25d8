package detection

import (
	"math"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// DefaultMergeProximity is the endpoint distance in pixels under which two
// wall candidates are coalesced.
const DefaultMergeProximity = 10.0

// MergeSegments coalesces wall candidates whose endpoints lie within the
// proximity threshold, repeating until no further merges are possible.
//
// Each pass greedily grows a segment by absorbing any remaining candidate
// with a nearby endpoint, extending the segment to the farthest endpoint
// pair of the union. Merging is by endpoint proximity alone, without a
// collinearity check, so near-collinear fragments from adjacent scan lines
// join even when slightly offset. The pass repeats to a fixpoint, which
// makes the operation idempotent: merging an already-merged set returns it
// unchanged.
//
// Zero-length candidates are discarded. The cost is O(n²) per pass over
// candidates, acceptable because the scan stride keeps candidate counts
// small; a finer stride would call for a spatial index here.
func MergeSegments(segments []Segment, proximity float64) []Segment {
	if proximity <= 0 {
		proximity = DefaultMergeProximity
	}

	current := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if !s.IsZero() {
			current = append(current, s)
		}
	}

	for {
		next := mergePass(current, proximity)
		if len(next) == len(current) {
			return next
		}
		current = next
	}
}

func mergePass(segments []Segment, proximity float64) []Segment {
	used := make([]bool, len(segments))
	merged := make([]Segment, 0, len(segments))

	for i := range segments {
		if used[i] {
			continue
		}
		used[i] = true
		current := segments[i]

		for {
			absorbed := false
			for j := i + 1; j < len(segments); j++ {
				if used[j] || !endpointsClose(current, segments[j], proximity) {
					continue
				}
				current = extend(current, segments[j])
				used[j] = true
				absorbed = true
			}
			if !absorbed {
				break
			}
		}
		merged = append(merged, current)
	}
	return merged
}

// endpointsClose reports whether any endpoint of a lies within proximity
// of any endpoint of b.
func endpointsClose(a, b Segment, proximity float64) bool {
	return a.Start.Distance(b.Start) <= proximity ||
		a.Start.Distance(b.End) <= proximity ||
		a.End.Distance(b.Start) <= proximity ||
		a.End.Distance(b.End) <= proximity
}

// extend replaces two segments with one spanning their farthest endpoint
// pair, normalized so the smaller endpoint comes first. Thickness and
// confidence keep the larger value; sketchiness is sticky.
func extend(a, b Segment) Segment {
	points := [4]geometry.PointInt{a.Start, a.End, b.Start, b.End}

	bi, bj := 0, 1
	farthest := -1.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if d := points[i].Distance(points[j]); d > farthest {
				farthest = d
				bi, bj = i, j
			}
		}
	}

	start, end := points[bi], points[bj]
	if end.X < start.X || (end.X == start.X && end.Y < start.Y) {
		start, end = end, start
	}

	return Segment{
		Start:      start,
		End:        end,
		Thickness:  math.Max(a.Thickness, b.Thickness),
		Confidence: math.Max(a.Confidence, b.Confidence),
		Sketchy:    a.Sketchy || b.Sketchy,
	}
}

package detection

import (
	"math"
	"sort"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// Opening caps keep pathological inputs from reporting absurd counts.
const (
	maxDoorEstimate   = 20
	maxWindowEstimate = 12
	openingDedupDist  = 30.0
)

// EstimateOpenings infers door and window counts from the wall layout.
//
// Neither is detected directly; both are estimates assembled from three
// signals:
//
//   - Door gaps: two near-collinear wall strokes whose facing endpoints
//     sit 50-100px apart with bright floor between them read as a doorway.
//   - Swing arcs: quarter-circle strokes (the drafted door swing) found by
//     an arc-tolerant Hough circle transform over the edge map.
//   - Window profiles: short bright interruptions (15-45px) inside a
//     single wall stroke, too narrow for a doorway.
//
// Door signals from both sources are deduplicated within 30px, keeping
// the higher confidence. Counts are capped to keep noisy inputs sane.
func EstimateOpenings(g *imaging.Grayscale, edges *imaging.EdgeMap, walls []Segment) (doors, windows int) {
	candidates := doorGaps(g, walls)
	candidates = append(candidates, swingArcs(edges)...)
	candidates = dedupOpenings(candidates)
	if len(candidates) > maxDoorEstimate {
		candidates = candidates[:maxDoorEstimate]
	}

	windowHits := windowProfiles(g, walls)
	if len(windowHits) > maxWindowEstimate {
		windowHits = windowHits[:maxWindowEstimate]
	}

	return len(candidates), len(windowHits)
}

// openingHit is one scored door or window candidate.
type openingHit struct {
	pos        geometry.Point2D
	confidence float64
}

// doorGaps finds doorway-sized bright gaps between collinear wall strokes.
func doorGaps(g *imaging.Grayscale, walls []Segment) []openingHit {
	var hits []openingHit

	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			a, b := walls[i], walls[j]

			diff := math.Abs(normalizeAngle(a.AngleDegrees()) - normalizeAngle(b.AngleDegrees()))
			if diff > 90 {
				diff = 180 - diff
			}
			if diff > 10 {
				continue
			}

			gap, pa, pb := nearestEndpoints(a, b)
			if gap < 50 || gap > 100 {
				continue
			}

			mid := geometry.Point2D{
				X: (pa.ToFloat().X + pb.ToFloat().X) / 2,
				Y: (pa.ToFloat().Y + pb.ToFloat().Y) / 2,
			}
			// A doorway shows open floor, not ink, between the jambs
			mean := g.MeanInRect(int(mid.X)-8, int(mid.Y)-8, int(mid.X)+8, int(mid.Y)+8)
			if mean <= 200 {
				continue
			}

			hits = append(hits, openingHit{pos: mid, confidence: 0.7})
		}
	}
	return hits
}

// nearestEndpoints returns the closest endpoint pair between two segments.
func nearestEndpoints(a, b Segment) (float64, geometry.PointInt, geometry.PointInt) {
	best := math.MaxFloat64
	var pa, pb geometry.PointInt
	for _, p := range [2]geometry.PointInt{a.Start, a.End} {
		for _, q := range [2]geometry.PointInt{b.Start, b.End} {
			if d := p.Distance(q); d < best {
				best = d
				pa, pb = p, q
			}
		}
	}
	return best, pa, pb
}

// swingArcs finds door-swing arcs with a Hough circle transform.
//
// Each edge pixel votes for candidate centers every 10° at each radius in
// the door-swing range (20-80px, sampled every 5). A full circle collects
// around 36 votes at its center; a door swing is a quarter arc, so local
// maxima with 20-60% of full-circle coverage are taken as swings while
// full circles (columns, furniture symbols) and stray corners are
// rejected.
func swingArcs(edges *imaging.EdgeMap) []openingHit {
	width, height := edges.Width, edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	var hits []openingHit

	for radius := 20; radius <= 80; radius += 5 {
		if radius >= width/2 || radius >= height/2 {
			break
		}

		accumulator := make([]int, width*height)
		for y := 0; y < height; y++ {
			row := y * width
			for x := 0; x < width; x++ {
				if !edges.On[row+x] {
					continue
				}
				for angle := 0; angle < 360; angle += 10 {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(float64(radius)*math.Cos(rad))
					cy := y - int(float64(radius)*math.Sin(rad))
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy*width+cx]++
					}
				}
			}
		}

		// 20% of the 36 possible votes marks a plausible arc
		threshold := 7
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				votes := accumulator[y*width+x]
				if votes < threshold {
					continue
				}

				coverage := float64(votes) / 36.0
				if coverage < 0.2 || coverage > 0.6 {
					continue
				}

				isMax := true
				for dy := -5; dy <= 5 && isMax; dy++ {
					for dx := -5; dx <= 5 && isMax; dx++ {
						if dy == 0 && dx == 0 {
							continue
						}
						ny, nx := y+dy, x+dx
						if ny >= 0 && ny < height && nx >= 0 && nx < width &&
							accumulator[ny*width+nx] > votes {
							isMax = false
						}
					}
				}
				if isMax {
					hits = append(hits, openingHit{
						pos:        geometry.Point2D{X: float64(x), Y: float64(y)},
						confidence: 0.6,
					})
				}
			}
		}
	}
	return hits
}

// windowProfiles walks each wall stroke looking for short bright
// interruptions: ink, then 15-45px of open space, then ink again. Gaps in
// the doorway range are left for doorGaps.
func windowProfiles(g *imaging.Grayscale, walls []Segment) []openingHit {
	var hits []openingHit

	for _, w := range walls {
		length := w.Length()
		if length < 60 {
			continue
		}

		dx := float64(w.End.X-w.Start.X) / length
		dy := float64(w.End.Y-w.Start.Y) / length

		brightStart := -1
		darkBefore := 0
		for step := 0; step <= int(length); step++ {
			x := int(float64(w.Start.X) + dx*float64(step))
			y := int(float64(w.Start.Y) + dy*float64(step))
			bright := g.At(x, y) > 200

			if !bright {
				if brightStart >= 0 {
					gap := step - brightStart
					if gap >= 15 && gap <= 45 && darkBefore >= 10 {
						mid := step - gap/2
						hits = append(hits, openingHit{
							pos: geometry.Point2D{
								X: float64(w.Start.X) + dx*float64(mid),
								Y: float64(w.Start.Y) + dy*float64(mid),
							},
							confidence: 0.6,
						})
					}
					brightStart = -1
					darkBefore = 0
				}
				darkBefore++
				continue
			}
			if brightStart < 0 {
				brightStart = step
			}
		}
	}

	return dedupOpenings(hits)
}

// dedupOpenings collapses candidates within openingDedupDist of each
// other, keeping the higher confidence.
func dedupOpenings(hits []openingHit) []openingHit {
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].confidence > hits[j].confidence
	})

	var kept []openingHit
	for _, h := range hits {
		dup := false
		for _, k := range kept {
			if h.pos.Distance(k.pos) < openingDedupDist {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, h)
		}
	}
	return kept
}

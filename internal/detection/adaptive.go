package detection

import (
	"github.com/anthonynsimon/bild/effect"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// AdaptiveStrategy derives its thresholds from the image histogram
// instead of assuming scanned-blueprint contrast.
//
// The buffer is binarized at the Otsu threshold, then the ink structure
// is morphologically closed (3x3) to seal pinholes and scanner dropout
// before region labeling and wall scanning. Merged walls are snapped back
// to their dominant axis, since merging stacked scanline runs can tilt
// an endpoint by a few pixels.
type AdaptiveStrategy struct {
	Regions        RegionOptions
	Scan           ScanOptions
	MergeProximity float64
}

func (s *AdaptiveStrategy) Name() string { return "adaptive" }

func (s *AdaptiveStrategy) Detect(g *imaging.Grayscale) (*Candidate, error) {
	threshold := g.OtsuThreshold()
	binary := g.Binarize(threshold)

	// Close the ink: erode brightness to grow strokes shut, dilate to
	// restore open-space extent.
	closed := imaging.FromImage(effect.Dilate(effect.Erode(binary.ToImage(), 1), 1))
	closed.OriginalWidth = g.OriginalWidth
	closed.OriginalHeight = g.OriginalHeight

	regions := FindRegions(closed, s.Regions)

	confidence := 0.85
	if otsuSeparation(g) >= 0.5 {
		confidence = 0.9
	}

	rooms := make([]RoomCandidate, 0, len(regions))
	for _, r := range regions {
		rooms = append(rooms, RoomCandidate{
			Bounds:     r.Bounds,
			PixelCount: r.PixelCount,
			Type:       ClassifyRoom(r.PixelCount, r.Bounds.AspectRatio()),
			Confidence: confidence,
		})
	}

	horizontal, vertical := ScanWalls(closed, s.Scan)
	walls := snapToAxis(mergeOrientations(horizontal, vertical, s.MergeProximity))

	doors := len(rooms) - 1
	if doors < simpleMinDoors {
		doors = simpleMinDoors
	}

	return &Candidate{
		Rooms:       rooms,
		Walls:       walls,
		DoorCount:   doors,
		WindowCount: simpleWindowEstimate,
	}, nil
}

// snapToAxis straightens each wall onto its dominant axis: the cross-axis
// coordinate becomes the endpoint mean and the extreme coordinates are
// kept, so a wall spans the full extent the scanlines observed.
func snapToAxis(walls []Segment) []Segment {
	out := make([]Segment, len(walls))
	for i, w := range walls {
		dx := w.End.X - w.Start.X
		dy := w.End.Y - w.Start.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}

		if dx >= dy {
			y := (w.Start.Y + w.End.Y) / 2
			x1, x2 := w.Start.X, w.End.X
			if x2 < x1 {
				x1, x2 = x2, x1
			}
			w.Start = geometry.PointInt{X: x1, Y: y}
			w.End = geometry.PointInt{X: x2, Y: y}
		} else {
			x := (w.Start.X + w.End.X) / 2
			y1, y2 := w.Start.Y, w.End.Y
			if y2 < y1 {
				y1, y2 = y2, y1
			}
			w.Start = geometry.PointInt{X: x, Y: y1}
			w.End = geometry.PointInt{X: x, Y: y2}
		}
		out[i] = w
	}
	return out
}

// otsuSeparation measures how cleanly the Otsu threshold splits the
// histogram: the between-class share of total variance, in [0,1]. Crisp
// line drawings score near 1; murky photographs score low.
func otsuSeparation(g *imaging.Grayscale) float64 {
	hist := g.Histogram()

	total := 0
	sum := 0.0
	for i, c := range hist {
		total += c
		sum += float64(i) * float64(c)
	}
	if total == 0 {
		return 0
	}

	mean := sum / float64(total)
	variance := 0.0
	for i, c := range hist {
		d := float64(i) - mean
		variance += d * d * float64(c)
	}
	variance /= float64(total)
	if variance == 0 {
		return 0
	}

	threshold := int(g.OtsuThreshold())
	var weight0, sum0 float64
	for i := 0; i <= threshold; i++ {
		weight0 += float64(hist[i])
		sum0 += float64(i) * float64(hist[i])
	}
	weight1 := float64(total) - weight0
	if weight0 == 0 || weight1 == 0 {
		return 0
	}

	mean0 := sum0 / weight0
	mean1 := (sum - sum0) / weight1
	between := (weight0 / float64(total)) * (weight1 / float64(total)) *
		(mean0 - mean1) * (mean0 - mean1)

	return between / variance
}

package detection

import (
	"math"
	"sort"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// TextArea is a region likely to contain dimension labels or room names.
type TextArea struct {
	Bounds     geometry.RectInt
	Confidence float64
}

// textWindowSizes are the sliding-window shapes tried during the text
// search, sized for typical label text at the working resolution.
var textWindowSizes = []struct{ w, h int }{
	{100, 30}, // small labels
	{150, 40}, // medium labels
	{200, 50}, // large labels
	{80, 25},  // very small labels
}

// FindTextAreas locates probable text regions by edge-density heuristics.
//
// Text shows a characteristic medium edge density (between 0.05 and 0.4)
// with predominantly horizontal structure, unlike walls (sparse, long
// straight runs) or hatching (dense). Each window size slides at half-step
// overlap; qualifying windows score
//
//	horizontalness * (1 - |density-0.2| / 0.2)
//
// and overlapping hits merge into their union. Results are sorted by
// confidence, highest first.
func FindTextAreas(edges *imaging.EdgeMap, minConfidence float64) []TextArea {
	width, height := edges.Width, edges.Height

	var candidates []TextArea

	for _, ws := range textWindowSizes {
		stepX := ws.w / 2
		stepY := ws.h / 2

		for y := 0; y+ws.h <= height; y += stepY {
			for x := 0; x+ws.w <= width; x += stepX {
				edgeCount := 0
				for wy := 0; wy < ws.h; wy++ {
					row := (y + wy) * width
					for wx := 0; wx < ws.w; wx++ {
						if edges.On[row+x+wx] {
							edgeCount++
						}
					}
				}

				density := float64(edgeCount) / float64(ws.w*ws.h)
				if density < 0.05 || density > 0.4 {
					continue
				}

				horizontalScore := horizontalness(edges, x, y, ws.w, ws.h)
				confidence := horizontalScore * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence < minConfidence {
					continue
				}

				candidates = append(candidates, TextArea{
					Bounds:     geometry.RectInt{X1: x, Y1: y, X2: x + ws.w, Y2: y + ws.h},
					Confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeTextAreas(candidates)

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// horizontalness measures how horizontal the edge structure in a window is
// by comparing row-wise and column-wise run counts. Text scores high; grid
// hatching scores near 0.5; vertical strokes score low.
func horizontalness(edges *imaging.EdgeMap, x, y, w, h int) float64 {
	horizontalRuns := 0
	verticalRuns := 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if edges.On[row*edges.Width+col] {
				if !inRun {
					horizontalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if edges.On[row*edges.Width+col] {
				if !inRun {
					verticalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeTextAreas unions overlapping hits, keeping the stronger confidence.
func mergeTextAreas(areas []TextArea) []TextArea {
	if len(areas) == 0 {
		return areas
	}

	var merged []TextArea
	for _, area := range areas {
		joined := false
		for i := range merged {
			if area.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(area.Bounds)
				merged[i].Confidence = math.Max(area.Confidence, merged[i].Confidence)
				joined = true
				break
			}
		}
		if !joined {
			merged = append(merged, area)
		}
	}
	return merged
}

// SuppressTextSegments drops wall candidates whose midpoint falls inside a
// text area. Dimension labels and room names produce short dark strokes
// that otherwise masquerade as interior walls.
func SuppressTextSegments(segments []Segment, areas []TextArea) []Segment {
	if len(areas) == 0 {
		return segments
	}

	kept := make([]Segment, 0, len(segments))
	for _, s := range segments {
		mid := s.Midpoint()
		midPoint := geometry.PointInt{X: int(mid.X), Y: int(mid.Y)}

		inText := false
		for _, area := range areas {
			if area.Bounds.Contains(midPoint) {
				inText = true
				break
			}
		}
		if !inText {
			kept = append(kept, s)
		}
	}
	return kept
}

package detection

import (
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// ContourStrategy detects rooms as closed rectangular outlines.
//
// It works well on clean computer-drawn plans where every room is a
// crisp rectangle: a cheap gradient edge test, connected-component
// tracing of the edge structure, and a rectangularity score comparing
// each component's pixel count against its bounding-box perimeter. Hand
// sketches defeat it quickly, which is why the structural strategy runs
// first.
type ContourStrategy struct {
	// GradientThreshold is the minimum neighbor intensity step treated as
	// an edge. Default 30.
	GradientThreshold int

	// MinRectangularity rejects components whose outline diverges too far
	// from their bounding-box perimeter. Default 0.5.
	MinRectangularity float64

	Hough HoughOptions
}

func (s *ContourStrategy) Name() string { return "contour" }

func (s *ContourStrategy) Detect(g *imaging.Grayscale) (*Candidate, error) {
	threshold := s.GradientThreshold
	if threshold <= 0 {
		threshold = 30
	}
	minRect := s.MinRectangularity
	if minRect <= 0 {
		minRect = 0.5
	}

	edges := gradientEdges(g, threshold)

	var rooms []RoomCandidate
	for _, c := range traceContours(edges) {
		w, h := c.bounds.Width(), c.bounds.Height()
		if w < 20 || h < 20 {
			continue
		}

		score := rectangularity(c.points, w, h)
		if score < minRect {
			continue
		}

		// The outline traces the room edge; the enclosed box area stands
		// in for floor area.
		area := c.bounds.Area()
		rooms = append(rooms, RoomCandidate{
			Bounds:     c.bounds,
			PixelCount: area,
			Type:       ClassifyRoom(area, c.bounds.AspectRatio()),
			Confidence: score,
		})
	}

	walls := HoughSegments(edges, s.Hough)
	doors, windows := EstimateOpenings(g, edges, walls)

	return &Candidate{
		Rooms:       rooms,
		Walls:       walls,
		DoorCount:   doors,
		WindowCount: windows,
	}, nil
}

// rectangularity scores how closely a contour's pixel count matches the
// perimeter of its bounding box. A perfect axis-aligned rectangle outline
// scores near 1; blobs and wandering scribbles score low or negative.
func rectangularity(points, width, height int) float64 {
	perimeter := 2 * (width + height)
	if perimeter == 0 {
		return 0
	}
	deviation := points - perimeter
	if deviation < 0 {
		deviation = -deviation
	}
	return 1 - float64(deviation)/float64(perimeter)
}

// gradientEdges marks pixels whose right or down neighbor differs by more
// than threshold. Far cheaper than Canny and good enough for crisp
// vector-rendered drawings.
func gradientEdges(g *imaging.Grayscale, threshold int) *imaging.EdgeMap {
	edges := imaging.NewEdgeMap(g.Width, g.Height)
	for y := 0; y < g.Height-1; y++ {
		row := y * g.Width
		for x := 0; x < g.Width-1; x++ {
			center := int(g.Pix[row+x])
			if absInt(center-int(g.Pix[row+x+1])) > threshold ||
				absInt(center-int(g.Pix[row+g.Width+x])) > threshold {
				edges.On[row+x] = true
			}
		}
	}
	return edges
}

// contour is one 8-connected component of edge pixels.
type contour struct {
	bounds geometry.RectInt
	points int
}

// traceContours labels 8-connected components of the edge map with an
// explicit stack. Components under 10 pixels are discarded as noise.
func traceContours(edges *imaging.EdgeMap) []contour {
	width, height := edges.Width, edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	visited := make([]bool, len(edges.On))
	var contours []contour

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			start := y*width + x
			if visited[start] || !edges.On[start] {
				continue
			}

			minX, minY := x, y
			maxX, maxY := x, y
			count := 0

			stack := []int{start}
			visited[start] = true

			for len(stack) > 0 {
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				px, py := idx%width, idx/width
				count++
				if px < minX {
					minX = px
				}
				if px > maxX {
					maxX = px
				}
				if py < minY {
					minY = py
				}
				if py > maxY {
					maxY = py
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := px+dx, py+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						nidx := ny*width + nx
						if !visited[nidx] && edges.On[nidx] {
							visited[nidx] = true
							stack = append(stack, nidx)
						}
					}
				}
			}

			if count >= 10 {
				contours = append(contours, contour{
					bounds: geometry.RectInt{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1},
					points: count,
				})
			}
		}
	}
	return contours
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package imaging

import (
	"math"
)

// DefaultEdgePairs are the hysteresis threshold pairs used by the
// structural detection path. The low pair catches faint pencil strokes,
// the high pair keeps only confident ink, and the union preserves sketchy
// walls without flooding the map with paper texture.
var DefaultEdgePairs = [][2]int{
	{30, 100},
	{50, 150},
	{80, 200},
}

// EdgeMap is a binary edge image. On is stored row-major; true marks an
// edge pixel.
type EdgeMap struct {
	Width  int
	Height int
	On     []bool
}

// NewEdgeMap allocates an all-off edge map.
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		On:     make([]bool, width*height),
	}
}

// At reports whether (x, y) is an edge pixel. Out-of-bounds reads are false.
func (e *EdgeMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return false
	}
	return e.On[y*e.Width+x]
}

// Count returns the number of edge pixels.
func (e *EdgeMap) Count() int {
	n := 0
	for _, on := range e.On {
		if on {
			n++
		}
	}
	return n
}

// Merge ORs another edge map of the same dimensions into this one.
// Mismatched dimensions are ignored.
func (e *EdgeMap) Merge(other *EdgeMap) {
	if other == nil || other.Width != e.Width || other.Height != e.Height {
		return
	}
	for i, on := range other.On {
		if on {
			e.On[i] = true
		}
	}
}

// DetectEdges performs Canny-style edge detection on the working buffer.
//
// Thresholds are given on the 0-255 intensity scale. Gradient magnitudes
// below thresholdLow are discarded, those above thresholdHigh are always
// kept, and the band between survives only when connected to a strong edge.
//
// # Algorithm
//
//  1. Gaussian blur: 5x5 kernel to reduce noise
//
//  2. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  3. Non-maximum suppression: Thin edges to 1-pixel width by keeping only
//     local maxima along the gradient direction
//
//  4. Hysteresis thresholding: strong edges kept, weak edges kept only
//     with a strong 8-neighbor
//
// # Threshold Selection
//
// Lower thresholds detect more edges but increase noise. Higher thresholds
// produce cleaner results but may miss faint strokes.
//
// Recommended starting points:
//   - Clean CAD exports: thresholdLow=50, thresholdHigh=150
//   - Photographed plans: thresholdLow=80, thresholdHigh=200
//   - Pencil sketches: thresholdLow=30, thresholdHigh=100
func DetectEdges(g *Grayscale, thresholdLow, thresholdHigh int) *EdgeMap {
	field := computeGradientField(g)
	return field.hysteresis(thresholdLow, thresholdHigh)
}

// DetectEdgesMulti runs edge detection at several threshold pairs over a
// single gradient computation and ORs the results.
//
// Hand-drawn plans mix confident ink with faint construction lines; no
// single threshold pair captures both. Running the expensive stages (blur,
// Sobel, suppression) once and varying only the hysteresis pass makes the
// union barely more costly than a single detection. A nil or empty pairs
// slice selects DefaultEdgePairs.
func DetectEdgesMulti(g *Grayscale, pairs [][2]int) *EdgeMap {
	if len(pairs) == 0 {
		pairs = DefaultEdgePairs
	}
	field := computeGradientField(g)
	combined := NewEdgeMap(g.Width, g.Height)
	for _, p := range pairs {
		combined.Merge(field.hysteresis(p[0], p[1]))
	}
	return combined
}

// gradientField holds non-maximum-suppressed gradient magnitudes in the
// 0-1 range, ready for hysteresis at any threshold pair.
type gradientField struct {
	width      int
	height     int
	suppressed [][]float64
}

func computeGradientField(g *Grayscale) *gradientField {
	width := g.Width
	height := g.Height

	// Normalize to 0-1 range for the convolution stages
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		row := y * width
		for x := 0; x < width; x++ {
			gray[y][x] = float64(g.Pix[row+x]) / 255.0
		}
	}

	blurred := gaussianBlur(gray, width, height)

	// Compute gradients using Sobel operator
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * sobelX[ky+1][kx+1]
					gy += blurred[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	return &gradientField{width: width, height: height, suppressed: suppressed}
}

// hysteresis applies double thresholding with edge tracking. Thresholds
// arrive on the 0-255 scale and are normalized to match the 0-1 gradient
// field.
func (f *gradientField) hysteresis(thresholdLow, thresholdHigh int) *EdgeMap {
	out := NewEdgeMap(f.width, f.height)
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			val := f.suppressed[y][x]
			if val >= highThresh {
				out.On[y*f.width+x] = true
			} else if val >= lowThresh {
				// Check if connected to a strong edge
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, f.height-1)
						px := clamp(x+kx, 0, f.width-1)
						if f.suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					out.On[y*f.width+x] = true
				}
			}
		}
	}
	return out
}

// gaussianBlur applies a 5x5 Gaussian blur to reduce noise before edge detection.
//
// Uses a standard 5x5 Gaussian kernel with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// Total kernel sum = 273, used for normalization.
// Border pixels use clamped (replicated) edge values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [][]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

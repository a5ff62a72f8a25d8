package detection

import (
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// Region is a connected set of open-space pixels, candidate for a room.
type Region struct {
	Bounds     geometry.RectInt
	PixelCount int
}

// RegionOptions tunes the flood-fill labeler. Zero values select defaults
// suited to buffers at the normalizer's 1024 cap.
type RegionOptions struct {
	// Stride is the seed sampling grid step. Seeds are only planted every
	// Stride pixels; fills themselves visit every connected pixel.
	// Default 8.
	Stride int

	// BrightThreshold is the minimum intensity for open-space pixels.
	// Default 200.
	BrightThreshold uint8

	// MinPixels discards regions below this size as noise specks.
	// Default 1000.
	MinPixels int

	// MaxPixels caps how far a single fill may grow. Growth stops at the
	// cap but the region is kept, so one giant bright area still yields
	// one (truncated) region. Default: the full buffer.
	MaxPixels int
}

func (o *RegionOptions) fillDefaults(g *imaging.Grayscale) {
	if o.Stride <= 0 {
		o.Stride = 8
	}
	if o.BrightThreshold == 0 {
		o.BrightThreshold = 200
	}
	if o.MinPixels <= 0 {
		o.MinPixels = 1000
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = len(g.Pix)
	}
}

// FindRegions labels connected bright regions by iterative flood fill.
//
// Seeds are sampled on a coarse grid for speed; each unvisited bright seed
// grows a region across 4-connected bright neighbors using an explicit
// stack. The visited mask is shared across fills, so overlapping seeds
// cannot double-count a region. Regions smaller than MinPixels are
// discarded.
//
// An all-dark buffer returns no regions; the caller escalates to fallback
// synthesis in that case.
func FindRegions(g *imaging.Grayscale, opts RegionOptions) []Region {
	opts.fillDefaults(g)

	width, height := g.Width, g.Height
	if width == 0 || height == 0 {
		return nil
	}

	visited := make([]bool, len(g.Pix))
	var regions []Region

	for y := 0; y < height; y += opts.Stride {
		for x := 0; x < width; x += opts.Stride {
			idx := y*width + x
			if visited[idx] || g.Pix[idx] < opts.BrightThreshold {
				continue
			}

			region := growRegion(g, visited, x, y, opts.BrightThreshold, opts.MaxPixels)
			if region.PixelCount >= opts.MinPixels {
				regions = append(regions, region)
			}
		}
	}
	return regions
}

// growRegion expands one flood fill from a seed, tracking the bounding box
// and pixel count. The stack holds flat pixel indices.
func growRegion(g *imaging.Grayscale, visited []bool, seedX, seedY int, bright uint8, maxPixels int) Region {
	width, height := g.Width, g.Height

	minX, minY := seedX, seedY
	maxX, maxY := seedX, seedY
	count := 0

	stack := []int{seedY*width + seedX}
	visited[stack[0]] = true

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := idx%width, idx/width
		count++
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		if count >= maxPixels {
			break
		}

		// 4-connected neighbors
		if x > 0 {
			push(g, visited, &stack, idx-1, bright)
		}
		if x < width-1 {
			push(g, visited, &stack, idx+1, bright)
		}
		if y > 0 {
			push(g, visited, &stack, idx-width, bright)
		}
		if y < height-1 {
			push(g, visited, &stack, idx+width, bright)
		}
	}

	return Region{
		Bounds:     geometry.RectInt{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1},
		PixelCount: count,
	}
}

func push(g *imaging.Grayscale, visited []bool, stack *[]int, idx int, bright uint8) {
	if visited[idx] || g.Pix[idx] < bright {
		return
	}
	visited[idx] = true
	*stack = append(*stack, idx)
}

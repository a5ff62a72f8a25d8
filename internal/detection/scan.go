package detection

import (
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// ScanOptions tunes the scanline wall detector.
type ScanOptions struct {
	// Stride selects every Kth row and column for scanning. The default
	// of 3 still crosses every wall at least 3 pixels thick. Default 3.
	Stride int

	// DarkThreshold is the maximum intensity for wall ink. Default 100.
	DarkThreshold uint8

	// MinRunLength is the shortest dark run accepted as a wall candidate,
	// in pixels. Default 20.
	MinRunLength int
}

func (o *ScanOptions) fillDefaults() {
	if o.Stride <= 0 {
		o.Stride = 3
	}
	if o.DarkThreshold == 0 {
		o.DarkThreshold = 100
	}
	if o.MinRunLength <= 0 {
		o.MinRunLength = 20
	}
}

// ScanWalls finds raw wall candidates by scanning rows and columns for
// runs of dark pixels.
//
// Every Kth row yields horizontal candidates, every Kth column vertical
// ones, independently. A physical wall crossed by several scan lines
// produces several short overlapping candidates; MergeSegments coalesces
// them afterward. Runs shorter than MinRunLength are dropped as stroke
// noise or text.
func ScanWalls(g *imaging.Grayscale, opts ScanOptions) (horizontal, vertical []Segment) {
	opts.fillDefaults()

	for y := 0; y < g.Height; y += opts.Stride {
		row := y * g.Width
		runStart := -1
		for x := 0; x <= g.Width; x++ {
			dark := x < g.Width && g.Pix[row+x] < opts.DarkThreshold
			if dark && runStart < 0 {
				runStart = x
			}
			if !dark && runStart >= 0 {
				if x-runStart >= opts.MinRunLength {
					horizontal = append(horizontal, Segment{
						Start:     geometry.PointInt{X: runStart, Y: y},
						End:       geometry.PointInt{X: x - 1, Y: y},
						Thickness: floorplan.DefaultWallThickness,
					})
				}
				runStart = -1
			}
		}
	}

	for x := 0; x < g.Width; x += opts.Stride {
		runStart := -1
		for y := 0; y <= g.Height; y++ {
			dark := y < g.Height && g.Pix[y*g.Width+x] < opts.DarkThreshold
			if dark && runStart < 0 {
				runStart = y
			}
			if !dark && runStart >= 0 {
				if y-runStart >= opts.MinRunLength {
					vertical = append(vertical, Segment{
						Start:     geometry.PointInt{X: x, Y: runStart},
						End:       geometry.PointInt{X: x, Y: y - 1},
						Thickness: floorplan.DefaultWallThickness,
					})
				}
				runStart = -1
			}
		}
	}

	return horizontal, vertical
}

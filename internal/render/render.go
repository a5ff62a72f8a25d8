package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

const (
	defaultLineWidth = 3
	defaultFillAlpha = 70
	outlineWidth     = 2
)

// Options adjusts overlay drawing. The zero value draws 3px wall
// strokes, translucent fills, and room labels.
type Options struct {
	// LineWidth is the wall stroke width in pixels. Zero selects 3.
	LineWidth int

	// FillAlpha is the room fill opacity, 0-255. Zero selects 70;
	// negative disables fills entirely.
	FillAlpha int

	// HideLabels suppresses room name text.
	HideLabels bool
}

// Overlay draws the detection result onto a copy of base and returns it.
// The input image is never modified; a nil result yields a plain copy.
//
// Result coordinates are normalized, so base can be the original image
// at full resolution even when detection ran on a downscaled buffer.
func Overlay(base image.Image, res *floorplan.DetectionResult, opts Options) *image.NRGBA {
	bounds := base.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), base, bounds.Min, draw.Src)
	if res == nil {
		return out
	}

	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	lineWidth := opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = defaultLineWidth
	}
	fillAlpha := opts.FillAlpha
	if fillAlpha == 0 {
		fillAlpha = defaultFillAlpha
	}
	fillAlpha = clampInt(fillAlpha, 0, 255)

	for _, room := range res.DetailedRooms {
		if len(room.Boundary) < 2 {
			continue
		}
		fill := RoomColor(room.Type)
		if fillAlpha > 0 {
			min, max := geometry.BoundingBox(room.Boundary)
			blendRect(out,
				int(min.X*w), int(min.Y*h),
				int(max.X*w), int(max.Y*h),
				fill, fillAlpha)
		}
		for i := 0; i+1 < len(room.Boundary); i++ {
			a, b := room.Boundary[i], room.Boundary[i+1]
			drawLine(out,
				int(a.X*w), int(a.Y*h),
				int(b.X*w), int(b.Y*h),
				outlineWidth, fill)
		}
	}

	for _, wall := range res.DetailedWalls {
		drawLine(out,
			int(wall.Start.X*w), int(wall.Start.Y*h),
			int(wall.End.X*w), int(wall.End.Y*h),
			lineWidth, WallColor(wall.Type))
	}

	if !opts.HideLabels {
		for _, room := range res.DetailedRooms {
			if len(room.Boundary) < 3 {
				continue
			}
			label := room.Label
			if label == "" {
				label = string(room.Type)
			}
			c := room.Centroid()
			drawLabel(out, int(c.X*w), int(c.Y*h), label)
		}
	}
	return out
}

// drawLine rasterizes a stroke by stepping along the dominant axis and
// stamping a width x width block at each step.
func drawLine(img *image.NRGBA, x1, y1, x2, y2, width int, c color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	if steps == 0 {
		steps = 1
	}
	r := width / 2

	for i := 0; i <= steps; i++ {
		x := x1 + dx*i/steps
		y := y1 + dy*i/steps
		for oy := -r; oy <= r; oy++ {
			for ox := -r; ox <= r; ox++ {
				setPx(img, x+ox, y+oy, c)
			}
		}
	}
}

// blendRect mixes c into the rectangle [x1,x2) x [y1,y2) at the given
// opacity, clipped to the image.
func blendRect(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA, alpha int) {
	b := img.Bounds()
	x1 = clampInt(x1, b.Min.X, b.Max.X)
	x2 = clampInt(x2, b.Min.X, b.Max.X)
	y1 = clampInt(y1, b.Min.Y, b.Max.Y)
	y2 = clampInt(y2, b.Min.Y, b.Max.Y)

	inv := 255 - alpha
	for y := y1; y < y2; y++ {
		o := img.PixOffset(x1, y)
		for x := x1; x < x2; x++ {
			img.Pix[o+0] = uint8((int(img.Pix[o+0])*inv + int(c.R)*alpha) / 255)
			img.Pix[o+1] = uint8((int(img.Pix[o+1])*inv + int(c.G)*alpha) / 255)
			img.Pix[o+2] = uint8((int(img.Pix[o+2])*inv + int(c.B)*alpha) / 255)
			img.Pix[o+3] = 255
			o += 4
		}
	}
}

// drawLabel centers text on (x, y) over a translucent card.
func drawLabel(img *image.NRGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelInk),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	left := x - width/2
	baseline := y + face.Ascent/2

	blendRect(img,
		left-3, baseline-face.Ascent-2,
		left+width+3, baseline+face.Descent+2,
		color.NRGBA{R: labelCard.R, G: labelCard.G, B: labelCard.B, A: 255},
		int(labelCard.A))

	d.Dot = fixed.P(left, baseline)
	d.DrawString(text)
}

func setPx(img *image.NRGBA, x, y int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	img.SetNRGBA(x, y, c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension caps the longer side of the working buffer. Detection
// thresholds (minimum region sizes, wall run lengths, room classification
// bands) are tuned against buffers at or below this size.
const DefaultMaxDimension = 1024

// Grayscale is the single-channel working buffer every detection stage
// operates on. Pixels are stored row-major, 0 = black ink and 255 = white
// paper. OriginalWidth and OriginalHeight preserve the pre-resize source
// dimensions so results can be reported against the original image.
type Grayscale struct {
	Width          int
	Height         int
	Pix            []uint8
	OriginalWidth  int
	OriginalHeight int
}

// NewGrayscale allocates a white (255) buffer. Useful for synthesizing test
// plans by drawing dark strokes onto blank paper.
func NewGrayscale(width, height int) *Grayscale {
	g := &Grayscale{
		Width:          width,
		Height:         height,
		Pix:            make([]uint8, width*height),
		OriginalWidth:  width,
		OriginalHeight: height,
	}
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	return g
}

// At returns the pixel at (x, y). Out-of-bounds reads return 255 so border
// handling in scan loops treats the outside world as blank paper.
func (g *Grayscale) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 255
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the pixel at (x, y), ignoring out-of-bounds coordinates.
func (g *Grayscale) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Clone returns a deep copy sharing no pixel storage.
func (g *Grayscale) Clone() *Grayscale {
	out := &Grayscale{
		Width:          g.Width,
		Height:         g.Height,
		Pix:            make([]uint8, len(g.Pix)),
		OriginalWidth:  g.OriginalWidth,
		OriginalHeight: g.OriginalHeight,
	}
	copy(out.Pix, g.Pix)
	return out
}

// Binarize returns a copy where pixels at or below threshold become 0 (ink)
// and all others become 255 (paper).
func (g *Grayscale) Binarize(threshold uint8) *Grayscale {
	out := g.Clone()
	for i, v := range out.Pix {
		if v <= threshold {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}

// Invert returns a copy with intensities flipped. Morphological operators
// act on bright foregrounds, so wall ink is inverted before dilation.
func (g *Grayscale) Invert() *Grayscale {
	out := g.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// ToImage converts the buffer to a standard library grayscale image for
// interoperation with image-processing packages.
func (g *Grayscale) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: g.Pix[y*g.Width+x]})
		}
	}
	return img
}

// FromImage converts a decoded image into a working buffer at its native
// size using ITU-R BT.601 luminance weights. No resizing or enhancement is
// applied; use Normalize for pipeline input.
func FromImage(img image.Image) *Grayscale {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	g := &Grayscale{
		Width:          width,
		Height:         height,
		Pix:            make([]uint8, width*height),
		OriginalWidth:  width,
		OriginalHeight: height,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, gr, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(gr>>8) + 0.114*float64(b>>8)
			g.Pix[y*width+x] = uint8(clamp(int(lum+0.5), 0, 255))
		}
	}
	return g
}

// NormalizeOptions controls preprocessing ahead of detection.
type NormalizeOptions struct {
	// MaxDimension caps the longer image side. Larger inputs are scaled
	// down proportionally with Lanczos resampling. Zero selects
	// DefaultMaxDimension.
	MaxDimension int

	// Enhance applies light denoising, sharpening, and contrast
	// stretching. Helps photographed and hand-drawn plans at some cost
	// in speed; clean CAD exports do not need it.
	Enhance bool
}

// Normalize converts an arbitrary decoded image into the pipeline's working
// grayscale buffer.
//
// # Algorithm
//
//  1. Downscale so the longer side is at most MaxDimension, preserving
//     aspect ratio (Lanczos resampling). Smaller images pass through at
//     native size.
//
//  2. With Enhance set: Gaussian blur (sigma 0.8) to suppress scan noise,
//     then sharpen and a small contrast boost to recover stroke edges.
//
//  3. Grayscale conversion using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B).
//
//  4. With Enhance set: stretch intensities so the 1st percentile maps to
//     0 and the 99th to 255, which spreads faint pencil work across the
//     full range.
//
// Detection thresholds throughout the pipeline (wall ink below 100, open
// floor above 200) assume this normalization has run.
func Normalize(img image.Image, opts NormalizeOptions) *Grayscale {
	maxDim := opts.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	work := img
	if originalWidth > maxDim || originalHeight > maxDim {
		work = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	if opts.Enhance {
		work = blur.Gaussian(work, 0.8)
		work = imaging.Sharpen(work, 0.6)
		work = imaging.AdjustContrast(work, 10)
	}

	g := FromImage(work)
	g.OriginalWidth = originalWidth
	g.OriginalHeight = originalHeight

	if opts.Enhance {
		g.stretchContrast()
	}
	return g
}

// stretchContrast remaps intensities so the 1st percentile becomes 0 and
// the 99th becomes 255. Near-flat images are left untouched.
func (g *Grayscale) stretchContrast() {
	total := g.Width * g.Height
	if total == 0 {
		return
	}
	hist := g.Histogram()

	lowCount := total / 100
	highCount := total - total/100

	low, high := 0, 255
	cumulative := 0
	for i := 0; i < 256; i++ {
		cumulative += hist[i]
		if cumulative >= lowCount {
			low = i
			break
		}
	}
	cumulative = 0
	for i := 0; i < 256; i++ {
		cumulative += hist[i]
		if cumulative >= highCount {
			high = i
			break
		}
	}

	if high-low < 16 {
		return
	}

	scale := 255.0 / float64(high-low)
	for i, v := range g.Pix {
		stretched := (float64(v) - float64(low)) * scale
		g.Pix[i] = uint8(clamp(int(stretched+0.5), 0, 255))
	}
}

package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestNewGrayscale_StartsWhite(t *testing.T) {
	g := NewGrayscale(10, 8)

	if g.Width != 10 || g.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 10x8", g.Width, g.Height)
	}
	for i, v := range g.Pix {
		if v != 255 {
			t.Fatalf("Pix[%d]: got %d, want 255", i, v)
		}
	}
}

func TestGrayscale_AtOutOfBounds(t *testing.T) {
	g := NewGrayscale(5, 5)
	g.Set(2, 2, 0)

	tests := []struct {
		x, y int
		want uint8
	}{
		{2, 2, 0},
		{-1, 2, 255},
		{2, -1, 255},
		{5, 2, 255},
		{2, 5, 255},
	}

	for _, tt := range tests {
		if got := g.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGrayscale_SetOutOfBoundsIgnored(t *testing.T) {
	g := NewGrayscale(4, 4)
	g.Set(-1, 0, 0)
	g.Set(0, -1, 0)
	g.Set(4, 0, 0)
	g.Set(0, 4, 0)

	for i, v := range g.Pix {
		if v != 255 {
			t.Fatalf("out-of-bounds Set modified Pix[%d] to %d", i, v)
		}
	}
}

func TestGrayscale_Binarize(t *testing.T) {
	g := NewGrayscale(3, 1)
	g.Set(0, 0, 50)
	g.Set(1, 0, 100)
	g.Set(2, 0, 101)

	b := g.Binarize(100)

	want := []uint8{0, 0, 255}
	for i, w := range want {
		if b.Pix[i] != w {
			t.Errorf("Binarize Pix[%d]: got %d, want %d", i, b.Pix[i], w)
		}
	}

	// Original untouched
	if g.Pix[0] != 50 {
		t.Error("Binarize modified the source buffer")
	}
}

func TestGrayscale_Invert(t *testing.T) {
	g := NewGrayscale(2, 1)
	g.Set(0, 0, 0)
	g.Set(1, 0, 200)

	inv := g.Invert()

	if inv.Pix[0] != 255 || inv.Pix[1] != 55 {
		t.Errorf("Invert: got [%d %d], want [255 55]", inv.Pix[0], inv.Pix[1])
	}
}

func TestGrayscale_CloneIndependent(t *testing.T) {
	g := NewGrayscale(4, 4)
	c := g.Clone()
	c.Set(0, 0, 0)

	if g.At(0, 0) != 255 {
		t.Error("mutation of clone leaked into source")
	}
	if c.OriginalWidth != g.OriginalWidth || c.OriginalHeight != g.OriginalHeight {
		t.Error("clone lost original dimensions")
	}
}

func TestGrayscale_ToImageRoundTrip(t *testing.T) {
	g := NewGrayscale(6, 4)
	fillRect(g, 1, 1, 4, 3, 30)

	back := FromImage(g.ToImage())

	if back.Width != g.Width || back.Height != g.Height {
		t.Fatalf("round trip dimensions: got %dx%d, want %dx%d",
			back.Width, back.Height, g.Width, g.Height)
	}
	for i := range g.Pix {
		if back.Pix[i] != g.Pix[i] {
			t.Fatalf("round trip Pix[%d]: got %d, want %d", i, back.Pix[i], g.Pix[i])
		}
	}
}

func TestFromImage_LuminanceWeights(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"pure red", color.RGBA{255, 0, 0, 255}, 76},
		{"pure green", color.RGBA{0, 255, 0, 255}, 150},
		{"pure blue", color.RGBA{0, 0, 255, 255}, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					img.Set(x, y, tt.c)
				}
			}

			g := FromImage(img)
			if got := g.At(0, 0); got != tt.want {
				t.Errorf("luminance: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalize_CapsLongerSide(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2048, 1024))

	g := Normalize(img, NormalizeOptions{})

	if g.Width != 1024 || g.Height != 512 {
		t.Errorf("normalized dimensions: got %dx%d, want 1024x512", g.Width, g.Height)
	}
	if g.OriginalWidth != 2048 || g.OriginalHeight != 1024 {
		t.Errorf("original dimensions: got %dx%d, want 2048x1024",
			g.OriginalWidth, g.OriginalHeight)
	}
}

func TestNormalize_SmallImagePassesThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))

	g := Normalize(img, NormalizeOptions{})

	if g.Width != 100 || g.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", g.Width, g.Height)
	}
}

func TestNormalize_CustomMaxDimension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 500))

	g := Normalize(img, NormalizeOptions{MaxDimension: 256})

	if g.Width != 256 || g.Height != 128 {
		t.Errorf("dimensions: got %dx%d, want 256x128", g.Width, g.Height)
	}
}

func TestNormalize_EnhancePreservesDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}

	g := Normalize(img, NormalizeOptions{Enhance: true})

	if g.Width != 200 || g.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", g.Width, g.Height)
	}
}

func TestStretchContrast_ExpandsNarrowRange(t *testing.T) {
	g := NewGrayscale(10, 10)
	for i := range g.Pix {
		if i < 50 {
			g.Pix[i] = 100
		} else {
			g.Pix[i] = 150
		}
	}

	g.stretchContrast()

	var low, high uint8 = 255, 0
	for _, v := range g.Pix {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	if low > 10 {
		t.Errorf("dark population: got %d, want near 0", low)
	}
	if high < 245 {
		t.Errorf("bright population: got %d, want near 255", high)
	}
}

func TestStretchContrast_FlatBufferUntouched(t *testing.T) {
	g := NewGrayscale(10, 10)
	for i := range g.Pix {
		g.Pix[i] = 128
	}

	g.stretchContrast()

	for i, v := range g.Pix {
		if v != 128 {
			t.Fatalf("flat buffer changed at Pix[%d]: got %d", i, v)
		}
	}
}

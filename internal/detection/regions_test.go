package detection

import (
	"testing"

	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// paintRect fills the half-open rectangle [x1,x2) x [y1,y2) with value v.
func paintRect(g *imaging.Grayscale, x1, y1, x2, y2 int, v uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			g.Set(x, y, v)
		}
	}
}

// quadrantPlan draws the canonical four-room test plan: an 800x600 white
// sheet with a 3px border rectangle from (50,50) to (750,550) and 3px
// divider strokes at x=400 and y=300.
func quadrantPlan() *imaging.Grayscale {
	g := imaging.NewGrayscale(800, 600)
	// Border rectangle
	paintRect(g, 50, 50, 750, 53, 0)
	paintRect(g, 50, 547, 750, 550, 0)
	paintRect(g, 50, 50, 53, 550, 0)
	paintRect(g, 747, 50, 750, 550, 0)
	// Dividers
	paintRect(g, 399, 50, 402, 550, 0)
	paintRect(g, 50, 299, 750, 302, 0)
	return g
}

func TestFindRegions_AllWhite(t *testing.T) {
	g := imaging.NewGrayscale(800, 600)

	regions := FindRegions(g, RegionOptions{})

	if len(regions) != 1 {
		t.Fatalf("region count: got %d, want 1", len(regions))
	}
	r := regions[0]
	if r.PixelCount != 800*600 {
		t.Errorf("pixel count: got %d, want %d", r.PixelCount, 800*600)
	}
	if r.Bounds.Width() != 800 || r.Bounds.Height() != 600 {
		t.Errorf("bounds: got %dx%d, want 800x600", r.Bounds.Width(), r.Bounds.Height())
	}
}

func TestFindRegions_AllDark(t *testing.T) {
	g := imaging.NewGrayscale(400, 300)
	paintRect(g, 0, 0, 400, 300, 0)

	if regions := FindRegions(g, RegionOptions{}); len(regions) != 0 {
		t.Errorf("dark buffer: got %d regions, want 0", len(regions))
	}
}

func TestFindRegions_QuadrantPlan(t *testing.T) {
	g := quadrantPlan()

	regions := FindRegions(g, RegionOptions{})

	// Four room quadrants plus the white frame outside the border
	if len(regions) != 5 {
		t.Fatalf("region count: got %d, want 5", len(regions))
	}

	quadrants := 0
	for _, r := range regions {
		// Each quadrant interior is roughly 346x246 pixels
		if r.PixelCount > 60000 && r.PixelCount < 100000 {
			quadrants++
		}
	}
	if quadrants != 4 {
		t.Errorf("quadrant-sized regions: got %d, want 4", quadrants)
	}
}

func TestFindRegions_MinPixelsFilter(t *testing.T) {
	g := imaging.NewGrayscale(200, 200)
	paintRect(g, 0, 0, 200, 200, 0)
	paintRect(g, 50, 50, 70, 70, 255) // 400 bright pixels

	if regions := FindRegions(g, RegionOptions{}); len(regions) != 0 {
		t.Errorf("below default min size: got %d regions, want 0", len(regions))
	}

	regions := FindRegions(g, RegionOptions{MinPixels: 100})
	if len(regions) != 1 {
		t.Fatalf("with lowered min size: got %d regions, want 1", len(regions))
	}
	if regions[0].PixelCount != 400 {
		t.Errorf("pixel count: got %d, want 400", regions[0].PixelCount)
	}
}

func TestFindRegions_CapStopsGrowthButKeepsRegion(t *testing.T) {
	g := imaging.NewGrayscale(100, 100)

	regions := FindRegions(g, RegionOptions{MinPixels: 100, MaxPixels: 500})

	if len(regions) < 2 {
		t.Fatalf("capped fill should yield multiple regions, got %d", len(regions))
	}
	capped := 0
	for _, r := range regions {
		if r.PixelCount > 500 {
			t.Errorf("region exceeds cap: %d pixels", r.PixelCount)
		}
		if r.PixelCount == 500 {
			capped++
		}
	}
	if capped == 0 {
		t.Error("no region reached the cap")
	}
}

func TestFindRegions_EmptyBuffer(t *testing.T) {
	g := &imaging.Grayscale{}
	if regions := FindRegions(g, RegionOptions{}); regions != nil {
		t.Errorf("empty buffer: got %v, want nil", regions)
	}
}

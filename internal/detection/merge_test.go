package detection

import (
	"reflect"
	"testing"

	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

func seg(x1, y1, x2, y2 int) Segment {
	return Segment{
		Start: geometry.PointInt{X: x1, Y: y1},
		End:   geometry.PointInt{X: x2, Y: y2},
	}
}

func TestMergeSegments_CoalescesChain(t *testing.T) {
	fragments := []Segment{
		seg(0, 0, 50, 0),
		seg(55, 0, 100, 0),
		seg(105, 0, 160, 0),
	}

	merged := MergeSegments(fragments, 10)

	if len(merged) != 1 {
		t.Fatalf("segment count: got %d, want 1", len(merged))
	}
	got := merged[0]
	if got.Start.X != 0 || got.End.X != 160 {
		t.Errorf("span: got x %d..%d, want 0..160", got.Start.X, got.End.X)
	}
}

func TestMergeSegments_Idempotent(t *testing.T) {
	fragments := []Segment{
		seg(0, 0, 50, 0),
		seg(55, 0, 100, 0),
		seg(20, 3, 90, 3), // scanline duplicate of the same wall
		seg(0, 50, 0, 120),
		seg(0, 125, 0, 200),
		seg(300, 300, 400, 300),
	}

	merged := MergeSegments(fragments, 10)
	again := MergeSegments(merged, 10)

	if !reflect.DeepEqual(merged, again) {
		t.Errorf("second merge changed output:\nfirst:  %v\nsecond: %v", merged, again)
	}
}

func TestMergeSegments_ScanlineDuplicates(t *testing.T) {
	// The same physical wall seen by two adjacent scan rows
	fragments := []Segment{
		seg(20, 0, 180, 0),
		seg(20, 3, 180, 3),
	}

	merged := MergeSegments(fragments, 10)

	if len(merged) != 1 {
		t.Fatalf("segment count: got %d, want 1", len(merged))
	}
	got := merged[0]
	if got.Start.X != 20 || got.End.X != 180 {
		t.Errorf("span: got x %d..%d, want 20..180", got.Start.X, got.End.X)
	}
}

func TestMergeSegments_DistantSegmentsPreserved(t *testing.T) {
	fragments := []Segment{
		seg(0, 0, 100, 0),
		seg(0, 200, 100, 200),
	}

	merged := MergeSegments(fragments, 10)

	if len(merged) != 2 {
		t.Errorf("segment count: got %d, want 2", len(merged))
	}
}

func TestMergeSegments_DropsZeroLength(t *testing.T) {
	fragments := []Segment{
		seg(50, 50, 50, 50),
		seg(0, 0, 100, 0),
	}

	merged := MergeSegments(fragments, 10)

	if len(merged) != 1 {
		t.Fatalf("segment count: got %d, want 1", len(merged))
	}
	if merged[0].IsZero() {
		t.Error("zero-length segment survived merging")
	}
}

func TestMergeSegments_KeepsStrongestAttributes(t *testing.T) {
	a := seg(0, 0, 50, 0)
	a.Thickness = 4
	a.Confidence = 0.6
	b := seg(55, 0, 100, 0)
	b.Thickness = 9
	b.Confidence = 0.9
	b.Sketchy = true

	merged := MergeSegments([]Segment{a, b}, 10)

	if len(merged) != 1 {
		t.Fatalf("segment count: got %d, want 1", len(merged))
	}
	got := merged[0]
	if got.Thickness != 9 {
		t.Errorf("thickness: got %v, want 9", got.Thickness)
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence: got %v, want 0.9", got.Confidence)
	}
	if !got.Sketchy {
		t.Error("sketchy flag lost in merge")
	}
}

func TestMergeSegments_Empty(t *testing.T) {
	if merged := MergeSegments(nil, 10); len(merged) != 0 {
		t.Errorf("merging nothing: got %d segments", len(merged))
	}
}

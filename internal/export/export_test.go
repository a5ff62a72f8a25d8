package export

import (
	"math"
	"testing"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// planResult is an 800x600 result at 0.05 ft/px, so the plan extent is
// 40x30 feet.
func planResult() *floorplan.DetectionResult {
	return &floorplan.DetectionResult{
		ImageWidth:  800,
		ImageHeight: 600,
		ScaleFactor: 0.05,
	}
}

func vertexNear(got Vertex, x, y, z float64) bool {
	return math.Abs(got[0]-x) < 1e-9 && math.Abs(got[1]-y) < 1e-9 && math.Abs(got[2]-z) < 1e-9
}

func TestExtrude_WallQuadOrder(t *testing.T) {
	res := planResult()
	res.DetailedWalls = []floorplan.Wall{{
		Start: geometry.Point2D{X: 0.25, Y: 0.5},
		End:   geometry.Point2D{X: 0.75, Y: 0.5},
		Type:  floorplan.WallInterior,
	}}

	m, err := Extrude(res, ExtrudeOptions{})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if m.FaceCount != 1 || m.VertexCount != 4 {
		t.Fatalf("got %d faces %d vertices, want 1 and 4", m.FaceCount, m.VertexCount)
	}

	quad := m.Faces[0]
	want := []struct{ x, y, z float64 }{
		{10, 0, 15}, // bottom-start
		{30, 0, 15}, // bottom-end
		{30, 8, 15}, // top-end
		{10, 8, 15}, // top-start
	}
	if len(quad) != 4 {
		t.Fatalf("quad corners: got %d, want 4", len(quad))
	}
	for i, w := range want {
		v := m.Vertices[quad[i]]
		if !vertexNear(v, w.x, w.y, w.z) {
			t.Errorf("corner %d: got %v, want (%g,%g,%g)", i, v, w.x, w.y, w.z)
		}
	}
}

func TestExtrude_HeightByWallType(t *testing.T) {
	cases := []struct {
		wallType floorplan.WallType
		want     float64
	}{
		{floorplan.WallInterior, 8},
		{floorplan.WallLoadBearing, 9},
		{floorplan.WallExterior, 10},
		{floorplan.WallType("unclassified"), 8},
	}

	for _, tc := range cases {
		res := planResult()
		res.DetailedWalls = []floorplan.Wall{{
			Start: geometry.Point2D{X: 0, Y: 0},
			End:   geometry.Point2D{X: 1, Y: 0},
			Type:  tc.wallType,
		}}
		m, err := Extrude(res, ExtrudeOptions{})
		if err != nil {
			t.Fatalf("Extrude(%q): %v", tc.wallType, err)
		}
		top := m.Vertices[m.Faces[0][2]]
		if top[1] != tc.want {
			t.Errorf("%q: top height got %g, want %g", tc.wallType, top[1], tc.want)
		}
	}
}

func TestExtrude_RoomSlabs(t *testing.T) {
	res := planResult()
	res.DetailedRooms = []floorplan.Room{{
		Type:     floorplan.RoomLiving,
		Boundary: geometry.RectRing(0, 0, 0.5, 0.5),
	}}

	m, err := Extrude(res, ExtrudeOptions{})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if m.FaceCount != 2 || m.VertexCount != 8 {
		t.Fatalf("got %d faces %d vertices, want 2 and 8", m.FaceCount, m.VertexCount)
	}

	floor, ceiling := m.Faces[0], m.Faces[1]
	wantFloor := []struct{ x, z float64 }{{0, 0}, {20, 0}, {20, 15}, {0, 15}}
	for i, w := range wantFloor {
		v := m.Vertices[floor[i]]
		if !vertexNear(v, w.x, 0, w.z) {
			t.Errorf("floor corner %d: got %v, want (%g,0,%g)", i, v, w.x, w.z)
		}
	}
	for i := range ceiling {
		v := m.Vertices[ceiling[i]]
		if v[1] != DefaultCeilingHeight {
			t.Errorf("ceiling corner %d height: got %g, want %g", i, v[1], DefaultCeilingHeight)
		}
	}
}

func TestExtrude_CeilingHeightOption(t *testing.T) {
	res := planResult()
	res.DetailedRooms = []floorplan.Room{{
		Boundary: geometry.RectRing(0, 0, 1, 1),
	}}

	m, err := Extrude(res, ExtrudeOptions{CeilingHeight: 12})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if m.Metadata.CeilingHeight != 12 {
		t.Errorf("metadata ceiling: got %g, want 12", m.Metadata.CeilingHeight)
	}
	for _, idx := range m.Faces[1] {
		if m.Vertices[idx][1] != 12 {
			t.Errorf("ceiling vertex height: got %g, want 12", m.Vertices[idx][1])
		}
	}
}

func TestExtrude_SkipsDegenerates(t *testing.T) {
	res := planResult()
	res.DetailedRooms = []floorplan.Room{{
		Boundary: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
	}}
	res.DetailedWalls = []floorplan.Wall{{
		Start: geometry.Point2D{X: 0.5, Y: 0.5},
		End:   geometry.Point2D{X: 0.5, Y: 0.5},
	}}

	m, err := Extrude(res, ExtrudeOptions{})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if m.FaceCount != 0 || m.VertexCount != 0 {
		t.Errorf("degenerate input produced %d faces %d vertices", m.FaceCount, m.VertexCount)
	}
}

func TestExtrude_MaterialsAndMetadata(t *testing.T) {
	m, err := Extrude(planResult(), ExtrudeOptions{})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}

	if m.Format != "custom" {
		t.Errorf("format: got %q", m.Format)
	}
	if m.Metadata.Units != "feet" {
		t.Errorf("units: got %q, want feet", m.Metadata.Units)
	}
	wantMaterials := map[string]Material{
		"floor":   {Color: "#8B7355", Type: "wood"},
		"walls":   {Color: "#F5F5DC", Type: "paint"},
		"ceiling": {Color: "#FFFFFF", Type: "paint"},
	}
	for name, want := range wantMaterials {
		if got := m.Materials[name]; got != want {
			t.Errorf("material %q: got %+v, want %+v", name, got, want)
		}
	}
}

func TestExtrude_OverlayEdits(t *testing.T) {
	res := planResult()
	detected := floorplan.NewWall(
		geometry.Point2D{X: 0.25, Y: 0.5},
		geometry.Point2D{X: 0.75, Y: 0.5},
		6, floorplan.WallInterior,
	)
	res.DetailedWalls = []floorplan.Wall{detected}

	added := floorplan.NewWall(
		geometry.Point2D{X: 0, Y: 0},
		geometry.Point2D{X: 1, Y: 0},
		6, floorplan.WallExterior,
	)
	m, err := Extrude(res, ExtrudeOptions{Overlay: Overlay{
		Removed: []string{detected.Key()},
		Added:   []floorplan.Wall{added},
	}})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}

	if m.FaceCount != 1 {
		t.Fatalf("faces: got %d, want 1 (detected wall removed, one added)", m.FaceCount)
	}
	if top := m.Vertices[m.Faces[0][2]]; top[1] != ExteriorWallHeight {
		t.Errorf("added wall extruded at %g, want exterior height", top[1])
	}
}

func TestExtrude_InputErrors(t *testing.T) {
	if _, err := Extrude(nil, ExtrudeOptions{}); err == nil {
		t.Error("nil result accepted")
	}
	if _, err := Extrude(&floorplan.DetectionResult{}, ExtrudeOptions{}); err == nil {
		t.Error("result without dimensions accepted")
	}
}

func TestExtrude_UncalibratedScaleDefaultsToUnity(t *testing.T) {
	res := planResult()
	res.ScaleFactor = 0
	res.DetailedWalls = []floorplan.Wall{{
		Start: geometry.Point2D{X: 0, Y: 0},
		End:   geometry.Point2D{X: 1, Y: 0},
		Type:  floorplan.WallInterior,
	}}

	m, err := Extrude(res, ExtrudeOptions{})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if end := m.Vertices[m.Faces[0][1]]; end[0] != 800 {
		t.Errorf("pixel-unit extent: got %g, want 800", end[0])
	}
}

package export

import (
	"errors"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// Extrusion heights in feet. Exterior walls reach the roof line;
// load-bearing walls run above the finished ceiling; interior partitions
// stop at standard door-frame height plus header.
const (
	InteriorWallHeight    = 8.0
	LoadBearingWallHeight = 9.0
	ExteriorWallHeight    = 10.0

	// DefaultCeilingHeight positions room ceiling slabs when the caller
	// does not override it.
	DefaultCeilingHeight = 10.0
)

// Vertex is one 3D point in feet, marshaled as [x, y, z] with Y up.
type Vertex [3]float64

// Face indexes 3 or more vertices of the model, counter-clockwise when
// viewed from the face normal.
type Face []int

// Material describes the surface finish for one face class.
type Material struct {
	Color string `json:"color"`
	Type  string `json:"type"`
}

// Metadata carries the units and provenance consumers need to place the
// geometry.
type Metadata struct {
	Units         string  `json:"units"`
	CeilingHeight float64 `json:"ceiling_height"`
	GeneratedFrom string  `json:"generated_from"`
}

// Model is the extruded geometry for one detection result.
type Model struct {
	Format      string              `json:"format"`
	Vertices    []Vertex            `json:"vertices"`
	Faces       []Face              `json:"faces"`
	VertexCount int                 `json:"vertex_count"`
	FaceCount   int                 `json:"face_count"`
	Materials   map[string]Material `json:"materials"`
	Metadata    Metadata            `json:"metadata"`
}

// ExtrudeOptions adjusts extrusion. The zero value gives the default
// ceiling height and no wall modifications.
type ExtrudeOptions struct {
	// CeilingHeight is the room ceiling slab elevation in feet. Zero or
	// negative selects DefaultCeilingHeight.
	CeilingHeight float64

	// Overlay edits the wall list before extrusion.
	Overlay Overlay
}

// WallHeight returns the extrusion height in feet for a wall type.
func WallHeight(t floorplan.WallType) float64 {
	switch t {
	case floorplan.WallExterior:
		return ExteriorWallHeight
	case floorplan.WallLoadBearing:
		return LoadBearingWallHeight
	default:
		return InteriorWallHeight
	}
}

// Extrude converts a detection result into 3D geometry.
//
// Room boundaries become floor and ceiling slabs; walls become vertical
// quads with the four vertices ordered bottom-start, bottom-end, top-end,
// top-start. Normalized result coordinates scale to feet through the
// processed pixel dimensions and the result's scale factor. Degenerate
// inputs (boundaries under three corners, zero-length walls) are skipped
// rather than rejected.
func Extrude(res *floorplan.DetectionResult, opts ExtrudeOptions) (*Model, error) {
	if res == nil {
		return nil, errors.New("extrude: nil result")
	}
	if res.ImageWidth <= 0 || res.ImageHeight <= 0 {
		return nil, errors.New("extrude: result has no image dimensions")
	}

	ceiling := opts.CeilingHeight
	if ceiling <= 0 {
		ceiling = DefaultCeilingHeight
	}

	scale := res.ScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	extentX := float64(res.ImageWidth) * scale
	extentZ := float64(res.ImageHeight) * scale

	m := &Model{
		Format: "custom",
		Materials: map[string]Material{
			"floor":   {Color: "#8B7355", Type: "wood"},
			"walls":   {Color: "#F5F5DC", Type: "paint"},
			"ceiling": {Color: "#FFFFFF", Type: "paint"},
		},
		Metadata: Metadata{
			Units:         "feet",
			CeilingHeight: ceiling,
			GeneratedFrom: "floor_plan_analysis",
		},
	}

	for _, room := range res.DetailedRooms {
		corners := openRing(room.Boundary)
		if len(corners) < 3 {
			continue
		}

		floor := make(Face, 0, len(corners))
		top := make(Face, 0, len(corners))
		for _, p := range corners {
			floor = append(floor, m.addVertex(p.X*extentX, 0, p.Y*extentZ))
		}
		for _, p := range corners {
			top = append(top, m.addVertex(p.X*extentX, ceiling, p.Y*extentZ))
		}
		m.Faces = append(m.Faces, floor, top)
	}

	walls := ApplyOverlay(res.DetailedWalls, opts.Overlay)
	for _, wall := range walls {
		if wall.Start == wall.End {
			continue
		}
		h := WallHeight(wall.Type)
		quad := Face{
			m.addVertex(wall.Start.X*extentX, 0, wall.Start.Y*extentZ),
			m.addVertex(wall.End.X*extentX, 0, wall.End.Y*extentZ),
			m.addVertex(wall.End.X*extentX, h, wall.End.Y*extentZ),
			m.addVertex(wall.Start.X*extentX, h, wall.Start.Y*extentZ),
		}
		m.Faces = append(m.Faces, quad)
	}

	m.VertexCount = len(m.Vertices)
	m.FaceCount = len(m.Faces)
	return m, nil
}

func (m *Model) addVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, Vertex{x, y, z})
	return len(m.Vertices) - 1
}

// openRing strips the duplicate closing point so faces index each corner
// once.
func openRing(ring []geometry.Point2D) []geometry.Point2D {
	if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

package synth

import (
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// DemoQuadrantLayout returns a curated four-room layout matching the
// standard demonstration plan: a rectangular border inset 50 px on an
// 800x600 sheet, split into quadrants by center dividers. Register it
// against an image's fingerprint to pin that image to this layout.
func DemoQuadrantLayout() Layout {
	const (
		left   = 50.0 / 800.0
		right  = 750.0 / 800.0
		top    = 50.0 / 600.0
		bottom = 550.0 / 600.0
		midX   = 0.5
		midY   = 0.5
	)

	rooms := []floorplan.Room{
		{
			Type:     floorplan.RoomLiving,
			Label:    "Living Room",
			Boundary: geometry.RectRing(left, top, midX, midY),
		},
		{
			Type:     floorplan.RoomKitchen,
			Label:    "Kitchen",
			Boundary: geometry.RectRing(midX, top, right, midY),
		},
		{
			Type:     floorplan.RoomBedroom,
			Label:    "Bedroom",
			Boundary: geometry.RectRing(left, midY, midX, bottom),
		},
		{
			Type:     floorplan.RoomBathroom,
			Label:    "Bathroom",
			Boundary: geometry.RectRing(midX, midY, right, bottom),
		},
	}

	return Layout{
		Rooms:       rooms,
		Walls:       floorplan.WallsFromRooms(rooms),
		DoorCount:   4,
		WindowCount: 6,
	}
}

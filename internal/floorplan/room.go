package floorplan

import (
	"github.com/floorsight/floorplan-mcp/internal/geometry"
)

// RoomType is the semantic classification assigned to a detected region.
type RoomType string

// The fixed room classification set. Every detected or synthesized region
// maps to one of these; RoomOther is the lowest-confidence default.
const (
	RoomBedroom  RoomType = "bedroom"
	RoomBathroom RoomType = "bathroom"
	RoomKitchen  RoomType = "kitchen"
	RoomLiving   RoomType = "living"
	RoomHallway  RoomType = "hallway"
	RoomCloset   RoomType = "closet"
	RoomStorage  RoomType = "storage"
	RoomLaundry  RoomType = "laundry"
	RoomOffice   RoomType = "office"
	RoomDeck     RoomType = "deck"
	RoomDining   RoomType = "dining"
	RoomOther    RoomType = "other"
)

// RoomTypes returns the full classification set in declaration order.
func RoomTypes() []RoomType {
	return []RoomType{
		RoomBedroom, RoomBathroom, RoomKitchen, RoomLiving,
		RoomHallway, RoomCloset, RoomStorage, RoomLaundry,
		RoomOffice, RoomDeck, RoomDining, RoomOther,
	}
}

// Valid reports whether t is a member of the classification set.
func (t RoomType) Valid() bool {
	for _, known := range RoomTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Room is one detected or synthesized room.
//
// Boundary is an ordered closed ring (first point equals last) in the
// result's coordinate space. Area is square feet after calibration.
// Confidence reflects how the room was found: measured regions score
// higher than heuristic synthesis.
type Room struct {
	Type       RoomType           `json:"type"`
	Area       float64            `json:"area"`
	Confidence float64            `json:"confidence"`
	Boundary   []geometry.Point2D `json:"boundary"`

	// Label carries human-readable text when a curated reference layout
	// supplied the room.
	Label string `json:"label,omitempty"`
}

// CloseBoundary appends the opening point when the ring is not closed.
// Rings with fewer than 3 points are left alone.
func (r *Room) CloseBoundary() {
	if len(r.Boundary) < 3 {
		return
	}
	if !geometry.IsClosedRing(r.Boundary) {
		r.Boundary = geometry.CloseRing(r.Boundary)
	}
}

// Centroid returns the mean of the boundary vertices, ignoring the
// duplicate closing point.
func (r *Room) Centroid() geometry.Point2D {
	return geometry.Centroid(r.Boundary)
}

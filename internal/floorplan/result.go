package floorplan

import (
	"math"
	"sort"
)

// DetectionResult is the aggregate returned for every processed image.
//
// A result is always produced for decodable input: when detection finds
// nothing usable the engine substitutes synthesized rooms and marks the
// result with Fallback=true and reduced confidences. ScaleVerified=false
// warns consumers that measurements rest on the default 1:1 pixel-to-foot
// assumption and may be off by orders of magnitude.
type DetectionResult struct {
	RoomsDetected int      `json:"rooms_detected"`
	WallCount     int      `json:"wall_count"`
	DoorCount     int      `json:"door_count"`
	WindowCount   int      `json:"window_count"`
	TotalSqft     float64  `json:"total_sqft"`
	Confidence    float64  `json:"confidence"`
	RoomTypes     []string `json:"room_types"`
	DetailedRooms []Room   `json:"detailed_rooms"`
	DetailedWalls []Wall   `json:"detailed_walls"`

	// Method names the strategy that produced the rooms ("simple",
	// "adaptive", "contour", "structural", or "fallback").
	Method string `json:"method"`

	// Fallback is true when the rooms were synthesized rather than
	// measured from the image.
	Fallback bool `json:"fallback"`

	// ScaleFactor is the feet-per-pixel value applied to measurements.
	ScaleFactor float64 `json:"scale_factor"`

	// ScaleVerified is false when ScaleFactor is the flagged 1:1 default
	// rather than a calibrated value.
	ScaleVerified bool `json:"scale_verified"`

	// ImageWidth and ImageHeight are the processed buffer dimensions the
	// normalized coordinates refer to.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// RoomAdjacency lists index pairs of rooms whose boundaries approach
	// within AdjacencyThreshold, sorted ascending.
	RoomAdjacency [][2]int `json:"room_adjacency,omitempty"`
}

// Recompute derives the summary fields from the detailed lists: counts,
// total square footage (rounded to 0.1), mean room confidence (rounded to
// 0.01), and the sorted deduplicated room-type set. Door and window counts
// are left alone since they come from the detector, not the room list.
func (r *DetectionResult) Recompute() {
	r.RoomsDetected = len(r.DetailedRooms)
	r.WallCount = len(r.DetailedWalls)

	total := 0.0
	confidence := 0.0
	for _, room := range r.DetailedRooms {
		total += room.Area
		confidence += room.Confidence
	}
	r.TotalSqft = math.Round(total*10) / 10

	if len(r.DetailedRooms) > 0 {
		confidence /= float64(len(r.DetailedRooms))
	}
	r.Confidence = math.Round(confidence*100) / 100

	r.RoomTypes = summarizeTypes(r.DetailedRooms)
}

// summarizeTypes returns the distinct room types present, sorted.
func summarizeTypes(rooms []Room) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, room := range rooms {
		name := string(room.Type)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

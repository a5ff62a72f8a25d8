package detection

import "github.com/floorsight/floorplan-mcp/internal/imaging"

// Fixed estimates used when nothing better is measurable.
const (
	simpleRoomConfidence = 0.85
	simpleWindowEstimate = 8
	simpleMinDoors       = 5
)

// SimpleStrategy is the fixed-threshold detector: bright flood-fill
// regions become rooms, dark scanline runs become walls. It has no
// adaptivity at all, which is exactly why it is last in the chain; short
// of a blank image it almost always yields something.
type SimpleStrategy struct {
	Regions        RegionOptions
	Scan           ScanOptions
	MergeProximity float64
}

func (s *SimpleStrategy) Name() string { return "simple" }

func (s *SimpleStrategy) Detect(g *imaging.Grayscale) (*Candidate, error) {
	regions := FindRegions(g, s.Regions)

	rooms := make([]RoomCandidate, 0, len(regions))
	for _, r := range regions {
		rooms = append(rooms, RoomCandidate{
			Bounds:     r.Bounds,
			PixelCount: r.PixelCount,
			Type:       ClassifyRoom(r.PixelCount, r.Bounds.AspectRatio()),
			Confidence: simpleRoomConfidence,
		})
	}

	horizontal, vertical := ScanWalls(g, s.Scan)
	walls := mergeOrientations(horizontal, vertical, s.MergeProximity)

	// Openings are not observable at this fidelity; assume one door per
	// room boundary with a floor of five, and a typical window count.
	doors := len(rooms) - 1
	if doors < simpleMinDoors {
		doors = simpleMinDoors
	}

	return &Candidate{
		Rooms:       rooms,
		Walls:       walls,
		DoorCount:   doors,
		WindowCount: simpleWindowEstimate,
	}, nil
}

// mergeOrientations merges horizontal and vertical scanline candidates
// separately so a corner junction never fuses two perpendicular walls
// into one diagonal.
func mergeOrientations(horizontal, vertical []Segment, proximity float64) []Segment {
	if proximity <= 0 {
		proximity = DefaultMergeProximity
	}
	merged := MergeSegments(horizontal, proximity)
	return append(merged, MergeSegments(vertical, proximity)...)
}

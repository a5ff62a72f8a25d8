package detection

import (
	"math"
	"sort"

	"github.com/floorsight/floorplan-mcp/internal/imaging"
)

// Wall-count limits for the structural detector. The cap scales with how
// busy the drawing is, within a clamped range; the floor keeps aggressive
// importance filtering from starving a legitimate plan.
const (
	structuralWallFloor     = 15
	structuralWallCap       = 25
	structuralWallCapMax    = 35
	structuralMinImportance = 0.3
)

// StructuralStrategy is the full detector for real-world drawings: scans,
// photographed sketches, and CAD exports alike.
//
// The pipeline: multi-threshold Canny union so both faint pencil and
// heavy marker strokes register; Hough extraction with contrast-adaptive
// length limits; fuzzy angle classification with sketch tolerance;
// parallel-stroke consolidation (double-line walls collapse to one);
// text suppression so dimension labels stop masquerading as short walls;
// importance filtering; and opening estimation from the resulting wall
// layout. Rooms come from bright-region labeling at the Otsu threshold.
type StructuralStrategy struct {
	Regions RegionOptions
	Hough   HoughOptions

	// TextConfidence is the minimum score at which a detected text area
	// suppresses wall candidates. Default 0.5.
	TextConfidence float64
}

func (s *StructuralStrategy) Name() string { return "structural" }

func (s *StructuralStrategy) Detect(g *imaging.Grayscale) (*Candidate, error) {
	edges := imaging.DetectEdgesMulti(g, nil)

	hough := s.Hough
	if hough.MinLength <= 0 {
		hough.MinLength = adaptiveMinLength(g)
	}

	segments := HoughSegments(edges, hough)
	segments = ConsolidateParallel(segments)

	textConf := s.TextConfidence
	if textConf <= 0 {
		textConf = 0.5
	}
	segments = SuppressTextSegments(segments, FindTextAreas(edges, textConf))

	walls := filterByImportance(segments)
	doors, windows := EstimateOpenings(g, edges, walls)

	// Open floor sits above the ink threshold; label it directly.
	regionOpts := s.Regions
	if regionOpts.BrightThreshold == 0 {
		otsu := g.OtsuThreshold()
		if otsu < 255 {
			otsu++
		}
		regionOpts.BrightThreshold = otsu
	}
	regions := FindRegions(g, regionOpts)

	confidence := roomConfidence(walls)
	rooms := make([]RoomCandidate, 0, len(regions))
	for _, r := range regions {
		rooms = append(rooms, RoomCandidate{
			Bounds:     r.Bounds,
			PixelCount: r.PixelCount,
			Type:       ClassifyRoom(r.PixelCount, r.Bounds.AspectRatio()),
			Confidence: confidence,
		})
	}

	return &Candidate{
		Rooms:       rooms,
		Walls:       walls,
		DoorCount:   doors,
		WindowCount: windows,
	}, nil
}

// adaptiveMinLength picks the Hough length threshold from image contrast.
// Washed-out scans produce noisy edge maps, so short lines are held to a
// higher standard; harsh high-contrast drawings can afford a lower one.
func adaptiveMinLength(g *imaging.Grayscale) int {
	_, stddev := g.Stats()
	switch {
	case stddev < 30:
		return 40
	case stddev > 100:
		return 25
	default:
		return 30
	}
}

// filterByImportance keeps the walls that matter structurally.
//
// Each wall is scored by a blend of relative length, angle confidence,
// and thickness. Walls scoring below the minimum are dropped, the
// survivors are capped (the cap growing with drawing density), and a
// floor stops the filter from discarding a real layout wholesale.
func filterByImportance(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}

	maxLength := 0.0
	for _, s := range segments {
		if l := s.Length(); l > maxLength {
			maxLength = l
		}
	}
	if maxLength == 0 {
		return nil
	}

	type scored struct {
		seg   Segment
		score float64
	}
	ranked := make([]scored, 0, len(segments))
	for _, s := range segments {
		score := 0.5*(s.Length()/maxLength) +
			0.3*s.Confidence +
			0.2*math.Min(s.Thickness/25.0, 1.0)
		ranked = append(ranked, scored{seg: s, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := 0
	for keep < len(ranked) && ranked[keep].score > structuralMinImportance {
		keep++
	}
	if keep < structuralWallFloor {
		keep = structuralWallFloor
		if keep > len(ranked) {
			keep = len(ranked)
		}
	}

	limit := structuralWallCap + len(segments)/10
	if limit > structuralWallCapMax {
		limit = structuralWallCapMax
	}
	if keep > limit {
		keep = limit
	}

	walls := make([]Segment, keep)
	for i := 0; i < keep; i++ {
		walls[i] = ranked[i].seg
	}
	return walls
}

// roomConfidence blends the mean wall angle-confidence with a fixed base,
// so a plan with crisp axis-aligned walls reports higher per-room
// confidence than a wobbly sketch.
func roomConfidence(walls []Segment) float64 {
	if len(walls) == 0 {
		return 0.8
	}
	sum := 0.0
	for _, w := range walls {
		sum += w.Confidence
	}
	mean := sum / float64(len(walls))

	conf := (0.8 + mean) / 2
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

package detection

import (
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
)

// Pixel-area bands for room classification, tuned for buffers at the
// normalizer's 1024 cap. A band edge is the exclusive upper bound.
const (
	closetBand   = 2000
	bathroomBand = 8000
	bedroomBand  = 16000
	kitchenBand  = 28000
)

// ClassifyRoom assigns a semantic type from pixel area and bounding-box
// aspect ratio.
//
// Classification is tiered by area band, with aspect ratio as a tie-break:
// very elongated shapes in the small bands read as hallways rather than
// closets or bathrooms, and mid-size rooms with a pronounced rectangle
// read as kitchens rather than bedrooms. This is a best-effort heuristic
// with no failure mode; degenerate input maps to RoomOther.
func ClassifyRoom(pixelCount int, aspectRatio float64) floorplan.RoomType {
	if pixelCount <= 0 || aspectRatio <= 0 {
		return floorplan.RoomOther
	}

	elongated := aspectRatio > 2.5 || aspectRatio < 0.4

	switch {
	case pixelCount < closetBand:
		if elongated {
			return floorplan.RoomHallway
		}
		return floorplan.RoomCloset
	case pixelCount < bathroomBand:
		if elongated {
			return floorplan.RoomHallway
		}
		return floorplan.RoomBathroom
	case pixelCount < bedroomBand:
		return floorplan.RoomBedroom
	case pixelCount < kitchenBand:
		// Kitchens tend to run long along one axis
		if aspectRatio > 1.3 || aspectRatio < 0.77 {
			return floorplan.RoomKitchen
		}
		return floorplan.RoomBedroom
	default:
		return floorplan.RoomLiving
	}
}

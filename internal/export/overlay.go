package export

import "github.com/floorsight/floorplan-mcp/internal/floorplan"

// Overlay edits a detected wall list before extrusion. External editors
// address existing walls by their symmetric key (floorplan.Wall.Key);
// removal wins when a key appears in both Removed and Replaced.
type Overlay struct {
	Added    []floorplan.Wall          `json:"added,omitempty"`
	Removed  []string                  `json:"removed,omitempty"`
	Replaced map[string]floorplan.Wall `json:"replaced,omitempty"`
}

// Empty reports whether the overlay carries no edits.
func (o Overlay) Empty() bool {
	return len(o.Added) == 0 && len(o.Removed) == 0 && len(o.Replaced) == 0
}

// ApplyOverlay returns a new wall list with the overlay's edits applied.
// The input slice is never modified.
func ApplyOverlay(walls []floorplan.Wall, ov Overlay) []floorplan.Wall {
	if ov.Empty() {
		out := make([]floorplan.Wall, len(walls))
		copy(out, walls)
		return out
	}

	removed := make(map[string]struct{}, len(ov.Removed))
	for _, key := range ov.Removed {
		removed[key] = struct{}{}
	}

	out := make([]floorplan.Wall, 0, len(walls)+len(ov.Added))
	for _, wall := range walls {
		key := wall.Key()
		if _, drop := removed[key]; drop {
			continue
		}
		if repl, ok := ov.Replaced[key]; ok {
			wall = repl
		}
		out = append(out, wall)
	}
	return append(out, ov.Added...)
}

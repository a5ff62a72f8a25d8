package detection

import "github.com/floorsight/floorplan-mcp/internal/imaging"

// Strategy is one detection approach over a normalized grayscale buffer.
//
// Strategies are pure and safe for concurrent use. An error or an empty
// room list both mean the strategy failed for this drawing; callers fall
// through to the next strategy in the chain.
type Strategy interface {
	Name() string
	Detect(g *imaging.Grayscale) (*Candidate, error)
}

// DefaultChain returns the strategies in degradation order, strongest
// first. The structural detector reads real construction drawings and
// hand sketches; contour handles clean computer-drawn plans; adaptive and
// simple are progressively blunter threshold detectors that almost always
// produce something.
func DefaultChain() []Strategy {
	return []Strategy{
		&StructuralStrategy{},
		&ContourStrategy{},
		&AdaptiveStrategy{},
		&SimpleStrategy{},
	}
}

// ByName returns the strategy with the given name from the default chain.
func ByName(name string) (Strategy, bool) {
	for _, s := range DefaultChain() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// StrategyNames lists the available strategy names in chain order.
func StrategyNames() []string {
	chain := DefaultChain()
	names := make([]string, len(chain))
	for i, s := range chain {
		names[i] = s.Name()
	}
	return names
}

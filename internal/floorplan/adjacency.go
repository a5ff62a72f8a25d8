package floorplan

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// AdjacencyThreshold is the normalized distance under which two rooms'
// boundary vertices mark the rooms as adjacent. Rectangular approximations
// leave small gaps between neighboring rooms, so exact touching cannot be
// required.
const AdjacencyThreshold = 0.05

// RoomAdjacency builds the room neighbor graph and returns its edges as
// sorted index pairs (low index first).
//
// Two rooms are adjacent when any pair of their boundary vertices lies
// closer than AdjacencyThreshold. The graph is undirected; topological
// correctness is not guaranteed by detection, so consumers should treat
// the pairs as hints rather than a verified room graph.
func RoomAdjacency(rooms []Room) [][2]int {
	if len(rooms) < 2 {
		return nil
	}

	g := simple.NewUndirectedGraph()
	for i := range rooms {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			if roomsTouch(&rooms[i], &rooms[j]) {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}

	var pairs [][2]int
	it := g.Edges()
	for it.Next() {
		e := it.Edge()
		a, b := int(e.From().ID()), int(e.To().ID())
		if a > b {
			a, b = b, a
		}
		pairs = append(pairs, [2]int{a, b})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

func roomsTouch(a, b *Room) bool {
	for _, pa := range a.Boundary {
		for _, pb := range b.Boundary {
			if pa.Distance(pb) < AdjacencyThreshold {
				return true
			}
		}
	}
	return false
}

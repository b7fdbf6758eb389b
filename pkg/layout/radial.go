package layout

import (
	"math"
	"sort"

	"github.com/lanternlab/lantern/pkg/graph"
)

// radialLayout is the mind-map layout: the designated center node sits at
// the origin and its direct neighbors are placed on a ring around it at
// equal angular increments, ordered by id so the picture is stable across
// re-renders. Nodes outside the 1-hop neighborhood land on a second ring
// at twice the radius.
func radialLayout(s *graph.Snapshot, params Params) map[string]graph.Position {
	centerID := params.CenterID
	if centerID == "" || !s.HasNode(centerID) {
		centerID = s.Nodes()[0].ID
	}

	neighborSet := make(map[string]bool)
	for _, id := range s.Neighbors(centerID) {
		if id != centerID {
			neighborSet[id] = true
		}
	}

	neighbors := make([]string, 0, len(neighborSet))
	var outer []string
	for _, node := range s.Nodes() {
		switch {
		case node.ID == centerID:
		case neighborSet[node.ID]:
			neighbors = append(neighbors, node.ID)
		default:
			outer = append(outer, node.ID)
		}
	}
	sort.Strings(neighbors)
	sort.Strings(outer)

	positions := make(map[string]graph.Position, s.NodeCount())
	positions[centerID] = graph.Position{X: 0, Y: 0}

	radius := params.radius()
	placeRing(positions, neighbors, radius)
	placeRing(positions, outer, radius*2)

	return positions
}

func placeRing(positions map[string]graph.Position, ids []string, radius float64) {
	if len(ids) == 0 {
		return
	}
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := step * float64(i)
		positions[id] = graph.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
}

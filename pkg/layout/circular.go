package layout

import (
	"math"

	"github.com/lanternlab/lantern/pkg/graph"
)

// circularLayout places all nodes evenly on a single circle around the
// origin. The circle radius grows with sqrt(nodeCount) so density stays
// roughly constant as graphs grow. Nodes are ordered by id.
func circularLayout(s *graph.Snapshot, params Params) map[string]graph.Position {
	ids := sortedIDs(s)
	n := len(ids)

	radius := params.radius() * math.Sqrt(float64(n)) / 2
	step := 2 * math.Pi / float64(n)

	positions := make(map[string]graph.Position, n)
	for i, id := range ids {
		angle := step * float64(i)
		positions[id] = graph.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return positions
}

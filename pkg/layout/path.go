package layout

import (
	"sort"

	"github.com/lanternlab/lantern/pkg/graph"
)

const clusterVerticalOffset = 320.0

// hypothesisPathLayout makes a selected A→B→C path legible: the path
// nodes sit left to right on a horizontal line with fixed spacing while
// every other node is packed into a tight grid below the line.
func hypothesisPathLayout(s *graph.Snapshot, params Params) map[string]graph.Position {
	spacing := params.spacing()
	positions := make(map[string]graph.Position, s.NodeCount())

	onPath := make(map[string]bool, len(params.Path))
	slot := 0
	for _, id := range params.Path {
		if !s.HasNode(id) || onPath[id] {
			continue
		}
		onPath[id] = true
		positions[id] = graph.Position{X: float64(slot) * spacing, Y: 0}
		slot++
	}

	var rest []string
	for _, node := range s.Nodes() {
		if !onPath[node.ID] {
			rest = append(rest, node.ID)
		}
	}
	sort.Strings(rest)

	// Near-square grid keeps the cluster compact.
	columns := 1
	for columns*columns < len(rest) {
		columns++
	}
	clusterSpacing := spacing / 3
	for i, id := range rest {
		row := i / columns
		col := i % columns
		positions[id] = graph.Position{
			X: float64(col) * clusterSpacing,
			Y: clusterVerticalOffset + float64(row)*clusterSpacing,
		}
	}
	return positions
}

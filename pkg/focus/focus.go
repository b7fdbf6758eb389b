// Package focus derives per-node opacity from the current selection and
// its 1-hop neighborhood.
package focus

import "github.com/lanternlab/lantern/pkg/graph"

const (
	// FullOpacity is assigned to the selected node and its neighbors.
	FullOpacity = 1.0
	// DimmedOpacity is assigned to everything outside the neighborhood
	// while focus mode is active.
	DimmedOpacity = 0.3
)

// Apply returns the opacity of every node. With focus disabled, or
// enabled without a selection anchor, every node is fully opaque. With a
// selection, the selected node and its direct neighbors via any edge in
// either direction stay at full opacity and the rest are dimmed.
//
// Apply is a pure derivation: calling it repeatedly with the same inputs
// yields the same result and mutates nothing.
func Apply(s *graph.Snapshot, selectedID string, enabled bool) map[string]float64 {
	opacity := make(map[string]float64, s.NodeCount())

	if !enabled || selectedID == "" || !s.HasNode(selectedID) {
		for _, node := range s.Nodes() {
			opacity[node.ID] = FullOpacity
		}
		return opacity
	}

	lit := make(map[string]bool, 1+len(s.Neighbors(selectedID)))
	lit[selectedID] = true
	for _, neighbor := range s.Neighbors(selectedID) {
		lit[neighbor] = true
	}

	for _, node := range s.Nodes() {
		if lit[node.ID] {
			opacity[node.ID] = FullOpacity
		} else {
			opacity[node.ID] = DimmedOpacity
		}
	}
	return opacity
}

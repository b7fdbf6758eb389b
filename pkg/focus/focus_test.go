package focus

import (
	"testing"

	"github.com/lanternlab/lantern/pkg/graph"
)

func chainSnapshot() *graph.Snapshot {
	// x — a — b — c: b and x are at distance 1 from a, c at distance 2.
	nodes := []graph.Node{
		{ID: "x", Kind: graph.NodeKindEntity, Label: "x"},
		{ID: "a", Kind: graph.NodeKindEntity, Label: "a"},
		{ID: "b", Kind: graph.NodeKindEntity, Label: "b"},
		{ID: "c", Kind: graph.NodeKindEntity, Label: "c"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "x", Target: "a"},
		{ID: "e2", Source: "a", Target: "b"},
		{ID: "e3", Source: "b", Target: "c"},
	}
	return graph.IngestSnapshot(nodes, edges)
}

func TestApplyFocusNeighborhood(t *testing.T) {
	opacity := Apply(chainSnapshot(), "a", true)

	tests := []struct {
		node string
		want float64
	}{
		{node: "a", want: FullOpacity},
		{node: "x", want: FullOpacity}, // incoming edge counts too
		{node: "b", want: FullOpacity},
		{node: "c", want: DimmedOpacity},
	}
	for _, tt := range tests {
		if got := opacity[tt.node]; got != tt.want {
			t.Errorf("opacity[%s] = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestApplyFocusDisabled(t *testing.T) {
	opacity := Apply(chainSnapshot(), "a", false)
	for node, got := range opacity {
		if got != FullOpacity {
			t.Errorf("opacity[%s] = %v, want full with focus disabled", node, got)
		}
	}
}

func TestApplyFocusWithoutSelection(t *testing.T) {
	opacity := Apply(chainSnapshot(), "", true)
	for node, got := range opacity {
		if got != FullOpacity {
			t.Errorf("opacity[%s] = %v, want full without a selection anchor", node, got)
		}
	}
}

func TestApplyFocusIdempotent(t *testing.T) {
	s := chainSnapshot()
	first := Apply(s, "a", true)
	second := Apply(s, "a", true)
	for node := range first {
		if first[node] != second[node] {
			t.Errorf("opacity[%s] differs across identical evaluations", node)
		}
	}

	restored := Apply(s, "a", false)
	for node, got := range restored {
		if got != FullOpacity {
			t.Errorf("disabling focus did not restore opacity for %s: %v", node, got)
		}
	}
}

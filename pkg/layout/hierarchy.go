package layout

import (
	"sort"

	"github.com/lanternlab/lantern/pkg/graph"
)

// hierarchicalLayout renders the dependency-waterfall view. Edges are
// read as a dependency DAG: a DFS pass removes back edges first, so
// cyclic input is layered as its acyclic projection rather than
// rejected. Nodes are layered by longest path from a root and ordered
// within each layer by the barycenter heuristic for a fixed sweep count.
func hierarchicalLayout(s *graph.Snapshot, params Params) map[string]graph.Position {
	ids := sortedIDs(s)
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	succ := make([][]int, len(ids))
	for _, edge := range s.Edges() {
		a, aOK := index[edge.Source]
		b, bOK := index[edge.Target]
		if !aOK || !bOK || a == b {
			continue
		}
		succ[a] = append(succ[a], b)
	}
	for i := range succ {
		sort.Ints(succ[i])
	}

	succ = removeBackEdges(succ)
	depth := longestPathDepths(succ)

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	layers := make([][]int, maxDepth+1)
	for i, d := range depth {
		layers[d] = append(layers[d], i)
	}

	pred := make([][]int, len(ids))
	for a, targets := range succ {
		for _, b := range targets {
			pred[b] = append(pred[b], a)
		}
	}
	orderLayersByBarycenter(layers, succ, pred, params.iterations(defaultSweeps))

	spacing := params.spacing()
	positions := make(map[string]graph.Position, len(ids))
	for layerIdx, layer := range layers {
		width := float64(len(layer)-1) * spacing
		for pos, node := range layer {
			positions[ids[node]] = graph.Position{
				X: float64(pos)*spacing - width/2,
				Y: float64(layerIdx) * spacing,
			}
		}
	}
	return positions
}

// removeBackEdges drops every edge the DFS classifies as a back edge,
// leaving the induced DAG. Traversal starts from nodes in index order so
// the projection is deterministic.
func removeBackEdges(succ [][]int) [][]int {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make([]int, len(succ))
	result := make([][]int, len(succ))

	var visit func(node int)
	visit = func(node int) {
		state[node] = inStack
		for _, next := range succ[node] {
			if state[next] == inStack {
				// Back edge, dropped.
				continue
			}
			result[node] = append(result[node], next)
			if state[next] == unvisited {
				visit(next)
			}
		}
		state[node] = done
	}

	for node := range succ {
		if state[node] == unvisited {
			visit(node)
		}
	}
	return result
}

// longestPathDepths assigns each node the length of the longest path
// reaching it from any root of the DAG.
func longestPathDepths(succ [][]int) []int {
	inDegree := make([]int, len(succ))
	for _, targets := range succ {
		for _, b := range targets {
			inDegree[b]++
		}
	}

	depth := make([]int, len(succ))
	var queue []int
	for node, d := range inDegree {
		if d == 0 {
			queue = append(queue, node)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range succ[node] {
			if depth[node]+1 > depth[next] {
				depth[next] = depth[node] + 1
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return depth
}

// orderLayersByBarycenter runs alternating down/up sweeps, sorting each
// layer by the mean position of a node's neighbors in the adjacent layer.
func orderLayersByBarycenter(layers [][]int, succ, pred [][]int, sweeps int) {
	slot := make(map[int]int)
	recordSlots := func(layer []int) {
		for pos, node := range layer {
			slot[node] = pos
		}
	}

	barycenter := func(node int, neighbors []int) float64 {
		if len(neighbors) == 0 {
			return float64(slot[node])
		}
		sum := 0.0
		for _, n := range neighbors {
			sum += float64(slot[n])
		}
		return sum / float64(len(neighbors))
	}

	for _, layer := range layers {
		recordSlots(layer)
	}

	for sweep := 0; sweep < sweeps; sweep++ {
		for i := 1; i < len(layers); i++ {
			sortLayer(layers[i], func(node int) float64 { return barycenter(node, pred[node]) })
			recordSlots(layers[i])
		}
		for i := len(layers) - 2; i >= 0; i-- {
			sortLayer(layers[i], func(node int) float64 { return barycenter(node, succ[node]) })
			recordSlots(layers[i])
		}
	}
}

func sortLayer(layer []int, key func(int) float64) {
	sort.SliceStable(layer, func(a, b int) bool {
		return key(layer[a]) < key(layer[b])
	})
}

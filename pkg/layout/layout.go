// Package layout assigns 2D coordinates to snapshot nodes. Every
// algorithm is a pure function of the snapshot, the algorithm name, and
// the params, so identical inputs always produce identical positions.
package layout

import (
	"sort"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/logger"
)

// Algorithm names a layout strategy.
type Algorithm string

const (
	AlgorithmCircular       Algorithm = "circular"
	AlgorithmRadial         Algorithm = "radial"
	AlgorithmForce          Algorithm = "force"
	AlgorithmHierarchical   Algorithm = "hierarchical"
	AlgorithmHypothesisPath Algorithm = "hypothesis-path"
)

// Params tunes the individual algorithms. The zero value selects sane
// defaults for every field.
type Params struct {
	// CenterID designates the radial center node. Defaults to the first
	// node of the snapshot when empty or unknown.
	CenterID string
	// Radius is the neighbor ring radius for radial layouts and the
	// base radius multiplier for circular layouts.
	Radius float64
	// Spacing is the horizontal node spacing of hypothesis-path and
	// hierarchical layouts.
	Spacing float64
	// Iterations bounds the force simulation and the barycenter sweeps.
	Iterations int
	// Path holds the node ids of the selected hypothesis, in order.
	Path []string
}

const (
	defaultRadius          = 120.0
	defaultSpacing         = 160.0
	defaultForceIterations = 300
	defaultSweeps          = 4
)

func (p Params) radius() float64 {
	if p.Radius > 0 {
		return p.Radius
	}
	return defaultRadius
}

func (p Params) spacing() float64 {
	if p.Spacing > 0 {
		return p.Spacing
	}
	return defaultSpacing
}

func (p Params) iterations(fallback int) int {
	if p.Iterations > 0 {
		return p.Iterations
	}
	return fallback
}

// Compute positions every node of the snapshot using the requested
// algorithm. An unrecognized algorithm falls back to circular with a
// logged warning; layout never fails an otherwise valid graph.
func Compute(s *graph.Snapshot, algorithm Algorithm, params Params) map[string]graph.Position {
	if s == nil || s.NodeCount() == 0 {
		return map[string]graph.Position{}
	}

	switch algorithm {
	case AlgorithmCircular:
		return circularLayout(s, params)
	case AlgorithmRadial:
		return radialLayout(s, params)
	case AlgorithmForce:
		return forceLayout(s, params)
	case AlgorithmHierarchical:
		return hierarchicalLayout(s, params)
	case AlgorithmHypothesisPath:
		return hypothesisPathLayout(s, params)
	default:
		logger.Warn("[Layout] Unknown algorithm, falling back to circular", "algorithm", string(algorithm))
		return circularLayout(s, params)
	}
}

// sortedIDs returns all node ids of the snapshot ordered by id, the
// stable ordering every deterministic algorithm derives from.
func sortedIDs(s *graph.Snapshot) []string {
	ids := make([]string, 0, s.NodeCount())
	for _, node := range s.Nodes() {
		ids = append(ids, node.ID)
	}
	sort.Strings(ids)
	return ids
}

package view

import "github.com/lanternlab/lantern/pkg/layout"

// Mode is the active visualization mode. Each mode is tied to one layout
// algorithm; switching modes re-triggers layout with that algorithm.
type Mode string

const (
	// ModeCityMap is the organic overview of the whole graph.
	ModeCityMap Mode = "city-map"
	// ModeBlastRadius is the mind-map view around a center node.
	ModeBlastRadius Mode = "blast-radius"
	// ModeDependencyWaterfall layers the graph as a dependency DAG.
	ModeDependencyWaterfall Mode = "dependency-waterfall"
	// ModeHypothesis lays the selected hypothesis path on a line.
	ModeHypothesis Mode = "hypothesis"
)

// Algorithm returns the layout algorithm backing the mode.
func (m Mode) Algorithm() layout.Algorithm {
	switch m {
	case ModeCityMap:
		return layout.AlgorithmForce
	case ModeBlastRadius:
		return layout.AlgorithmRadial
	case ModeDependencyWaterfall:
		return layout.AlgorithmHierarchical
	case ModeHypothesis:
		return layout.AlgorithmHypothesisPath
	default:
		return layout.AlgorithmCircular
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCityMap, ModeBlastRadius, ModeDependencyWaterfall, ModeHypothesis:
		return true
	}
	return false
}

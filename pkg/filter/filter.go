// Package filter derives the visible subset of a snapshot from a
// free-text query and structured facets. Filtering is a pure read of the
// snapshot; nodes are never mutated.
package filter

import (
	"strings"

	"github.com/lanternlab/lantern/pkg/graph"
)

// Result is the visible render set for one (query, filters) evaluation.
//
// MatchingIDs holds only the nodes that satisfied the text query itself,
// as opposed to nodes that are visible because no facet excluded them;
// the renderer highlights these.
type Result struct {
	VisibleNodes []graph.Node `json:"visibleNodes"`
	VisibleEdges []graph.Edge `json:"visibleEdges"`
	MatchingIDs  []string     `json:"matchingIds"`
}

// Apply evaluates the query and facets against the snapshot. The query
// and every facet combine with AND semantics: a node is visible only if
// it passes all of them.
func Apply(s *graph.Snapshot, query string, filters graph.Filters) Result {
	result := Result{
		VisibleNodes: make([]graph.Node, 0, s.NodeCount()),
		VisibleEdges: make([]graph.Edge, 0, len(s.Edges())),
		MatchingIDs:  []string{},
	}

	query = strings.TrimSpace(strings.ToLower(query))
	visible := make(map[string]bool, s.NodeCount())

	for _, node := range s.Nodes() {
		queryMatched := query != "" && matchesQuery(node, query)
		if query != "" && !queryMatched {
			continue
		}
		if !passesFacets(node, filters) {
			continue
		}

		visible[node.ID] = true
		result.VisibleNodes = append(result.VisibleNodes, node)
		if queryMatched {
			result.MatchingIDs = append(result.MatchingIDs, node.ID)
		}
	}

	for _, edge := range s.Edges() {
		if visible[edge.Source] && visible[edge.Target] {
			result.VisibleEdges = append(result.VisibleEdges, edge)
		}
	}

	return result
}

// matchesQuery is a case-insensitive substring match against the label,
// the resource author, and every tag. The query is already lowercased.
func matchesQuery(node graph.Node, query string) bool {
	if strings.Contains(strings.ToLower(node.Label), query) {
		return true
	}
	meta := node.Resource()
	if meta == nil {
		return false
	}
	if strings.Contains(strings.ToLower(meta.Author), query) {
		return true
	}
	for _, tag := range meta.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func passesFacets(node graph.Node, filters graph.Filters) bool {
	meta := node.Resource()
	if meta == nil {
		// Entity nodes bypass the resource facets entirely.
		return true
	}

	if len(filters.ResourceTypes) > 0 && !containsString(filters.ResourceTypes, meta.ResourceType) {
		return false
	}

	// Resources without a quality score bypass the quality facet.
	if meta.QualityScore != nil && *meta.QualityScore < filters.MinQuality {
		return false
	}

	if filters.DateRange != nil && meta.PublishedAt != nil {
		if meta.PublishedAt.Before(filters.DateRange[0]) || meta.PublishedAt.After(filters.DateRange[1]) {
			return false
		}
	}

	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

package graph

import (
	"sync/atomic"

	"github.com/lanternlab/lantern/pkg/logger"
)

var snapshotVersion atomic.Uint64

// Snapshot is an immutable normalized (nodes, edges) pair. Each snapshot
// carries a process-unique version used as a cache key by derived
// computations.
type Snapshot struct {
	version uint64
	nodes   []Node
	edges   []Edge

	nodeIndex map[string]int
	neighbors map[string][]string
}

// IngestSnapshot normalizes raw nodes and edges into a Snapshot.
//
// Duplicate node ids keep the first occurrence; edges referencing unknown
// node ids are dropped. Both conditions are logged as warnings and never
// fail the ingest, so a partially malformed response still renders.
func IngestSnapshot(nodes []Node, edges []Edge) *Snapshot {
	s := &Snapshot{
		version:   snapshotVersion.Add(1),
		nodes:     make([]Node, 0, len(nodes)),
		edges:     make([]Edge, 0, len(edges)),
		nodeIndex: make(map[string]int, len(nodes)),
		neighbors: make(map[string][]string, len(nodes)),
	}

	for _, node := range nodes {
		if _, exists := s.nodeIndex[node.ID]; exists {
			logger.Warn("[Graph] Duplicate node id in snapshot, keeping first", "node_id", node.ID)
			continue
		}
		s.nodeIndex[node.ID] = len(s.nodes)
		s.nodes = append(s.nodes, node)
	}

	dropped := 0
	for _, edge := range edges {
		_, srcOK := s.nodeIndex[edge.Source]
		_, tgtOK := s.nodeIndex[edge.Target]
		if !srcOK || !tgtOK {
			dropped++
			continue
		}
		s.edges = append(s.edges, edge)
		s.neighbors[edge.Source] = append(s.neighbors[edge.Source], edge.Target)
		s.neighbors[edge.Target] = append(s.neighbors[edge.Target], edge.Source)
	}
	if dropped > 0 {
		logger.Warn("[Graph] Dropped dangling edges from snapshot", "count", dropped)
	}

	return s
}

// Empty returns a snapshot with no nodes and no edges.
func Empty() *Snapshot {
	return IngestSnapshot(nil, nil)
}

// Version returns the process-unique version of this snapshot.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Nodes returns the normalized nodes in ingestion order. The returned
// slice must not be mutated.
func (s *Snapshot) Nodes() []Node {
	return s.nodes
}

// Edges returns the normalized edges in ingestion order. The returned
// slice must not be mutated.
func (s *Snapshot) Edges() []Edge {
	return s.edges
}

// NodeCount returns the number of live nodes.
func (s *Snapshot) NodeCount() int {
	return len(s.nodes)
}

// Node returns the node with the given id, or nil if it does not exist.
func (s *Snapshot) Node(id string) *Node {
	idx, ok := s.nodeIndex[id]
	if !ok {
		return nil
	}
	return &s.nodes[idx]
}

// HasNode reports whether a node with the given id is live.
func (s *Snapshot) HasNode(id string) bool {
	_, ok := s.nodeIndex[id]
	return ok
}

// Neighbors returns the ids of all nodes directly connected to id via any
// edge, in either direction. Ids may repeat when parallel edges exist.
func (s *Snapshot) Neighbors(id string) []string {
	return s.neighbors[id]
}

// ResolvesPath reports whether every id of a hypothesis path is live in
// this snapshot. A hypothesis whose path no longer resolves stays in the
// side list but is not navigable.
func (s *Snapshot) ResolvesPath(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.HasNode(id) {
			return false
		}
	}
	return true
}

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/view"
)

// Document is the canonical structured export: the visible node and
// edge set plus export metadata. Feeding Nodes and Edges back through
// ingestion reproduces the same graph.
type Document struct {
	Nodes    []graph.Node `json:"nodes"`
	Edges    []graph.Edge `json:"edges"`
	Metadata Metadata     `json:"metadata"`
}

type Metadata struct {
	ExportedAt time.Time `json:"exportedAt"`
	NodeCount  int       `json:"nodeCount"`
	EdgeCount  int       `json:"edgeCount"`
	Mode       string    `json:"mode"`
}

// WriteJSON writes the canonical document for the view's visible graph.
func WriteJSON(w io.Writer, v view.View) error {
	doc := Document{
		Nodes: v.Nodes,
		Edges: v.Edges,
		Metadata: Metadata{
			ExportedAt: time.Now().UTC(),
			NodeCount:  len(v.Nodes),
			EdgeCount:  len(v.Edges),
			Mode:       string(v.Mode),
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// ReadJSON ingests a previously exported document back into a snapshot.
func ReadJSON(r io.Reader) (*graph.Snapshot, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return graph.IngestSnapshot(doc.Nodes, doc.Edges), nil
}

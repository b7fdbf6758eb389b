// Package graph defines the typed model of the knowledge graph as it is
// rendered: nodes, edges, hypotheses, and the viewport. The model is the
// single source of truth that layout, filtering, and focus derivations
// operate on.
package graph

import (
	"encoding/json"
	"fmt"
	"time"
)

// NodeKind discriminates the two node flavors carried by a snapshot.
type NodeKind string

const (
	NodeKindResource NodeKind = "resource"
	NodeKindEntity   NodeKind = "entity"
)

// RelationshipType classifies an edge.
type RelationshipType string

const (
	RelationCitation   RelationshipType = "citation"
	RelationSemantic   RelationshipType = "semantic"
	RelationEntity     RelationshipType = "entity"
	RelationHypothesis RelationshipType = "hypothesis"
)

// Position is a 2D coordinate in layout space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeMetadata is the closed set of kind-specific payloads. Exactly one
// implementation exists per NodeKind.
type NodeMetadata interface {
	isNodeMetadata()
}

// ResourceMetadata carries the payload of a resource node.
//
// QualityScore is nil when the backing service produced no score for the
// resource; filter facets treat such nodes as passing the quality facet.
type ResourceMetadata struct {
	ResourceType     string     `json:"resourceType"`
	Author           string     `json:"author,omitempty"`
	QualityScore     *float64   `json:"qualityScore,omitempty"`
	CitationCount    int        `json:"citationCount"`
	HasContradiction bool       `json:"hasContradiction"`
	Tags             []string   `json:"tags,omitempty"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
}

func (ResourceMetadata) isNodeMetadata() {}

// EntityMetadata carries the payload of an entity node.
type EntityMetadata struct {
	EntityType   string `json:"entityType"`
	MentionCount int    `json:"mentionCount"`
}

func (EntityMetadata) isNodeMetadata() {}

// Node is a single renderable node.
//
// Position is owned by the layout engine until the user drags the node;
// Opacity is derived on every focus evaluation and never persisted.
type Node struct {
	ID       string       `json:"id"`
	Kind     NodeKind     `json:"kind"`
	Label    string       `json:"label"`
	Position Position     `json:"position"`
	Metadata NodeMetadata `json:"metadata,omitempty"`
	Opacity  float64      `json:"opacity"`
}

// nodeJSON mirrors Node with raw metadata so the union can be decoded
// after the kind is known.
type nodeJSON struct {
	ID       string          `json:"id"`
	Kind     NodeKind        `json:"kind"`
	Label    string          `json:"label"`
	Position Position        `json:"position"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Opacity  float64         `json:"opacity"`
}

// UnmarshalJSON decodes the metadata union keyed by the node kind.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Kind = raw.Kind
	n.Label = raw.Label
	n.Position = raw.Position
	n.Opacity = raw.Opacity
	n.Metadata = nil

	if len(raw.Metadata) == 0 || string(raw.Metadata) == "null" {
		return nil
	}

	switch raw.Kind {
	case NodeKindResource:
		var meta ResourceMetadata
		if err := json.Unmarshal(raw.Metadata, &meta); err != nil {
			return fmt.Errorf("failed to decode resource metadata for node %s: %w", raw.ID, err)
		}
		n.Metadata = meta
	case NodeKindEntity:
		var meta EntityMetadata
		if err := json.Unmarshal(raw.Metadata, &meta); err != nil {
			return fmt.Errorf("failed to decode entity metadata for node %s: %w", raw.ID, err)
		}
		n.Metadata = meta
	default:
		return fmt.Errorf("unknown node kind %q for node %s", raw.Kind, raw.ID)
	}

	return nil
}

// Resource returns the resource metadata, or nil for non-resource nodes.
func (n *Node) Resource() *ResourceMetadata {
	if meta, ok := n.Metadata.(ResourceMetadata); ok {
		return &meta
	}
	return nil
}

// Entity returns the entity metadata, or nil for non-entity nodes.
func (n *Node) Entity() *EntityMetadata {
	if meta, ok := n.Metadata.(EntityMetadata); ok {
		return &meta
	}
	return nil
}

// Edge connects two nodes of a snapshot. Source and Target must reference
// live node ids; edges that do not are dropped at ingestion.
type Edge struct {
	ID                    string           `json:"id"`
	Source                string           `json:"source"`
	Target                string           `json:"target"`
	RelationshipType      RelationshipType `json:"relationshipType"`
	Strength              float64          `json:"strength"`
	IsContradiction       bool             `json:"isContradiction"`
	IsHiddenConnection    bool             `json:"isHiddenConnection"`
	IsResearchGap         bool             `json:"isResearchGap"`
	HasSupportingEvidence bool             `json:"hasSupportingEvidence"`
}

// HypothesisEvidence holds the supporting material attached to a hypothesis.
type HypothesisEvidence struct {
	Description string   `json:"description"`
	Papers      []string `json:"papers,omitempty"`
	Citations   []string `json:"citations,omitempty"`
	Connections []string `json:"connections,omitempty"`
}

// HypothesisMetadata flags notable properties of a discovered connection.
type HypothesisMetadata struct {
	HasContradiction bool `json:"hasContradiction"`
	HasResearchGap   bool `json:"hasResearchGap"`
}

// Hypothesis is a candidate A→B→C connection returned by discovery.
// It is immutable once returned; a new discovery request replaces the
// whole set rather than patching in place.
type Hypothesis struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Confidence float64            `json:"confidence"`
	Nodes      []string           `json:"nodes"`
	Evidence   HypothesisEvidence `json:"evidence"`
	Metadata   HypothesisMetadata `json:"metadata"`
}

// ViewportState is the user-controlled camera plus the current selection.
// Selection holds at most one node id; empty string means no selection.
type ViewportState struct {
	Zoom      float64  `json:"zoom"`
	Center    Position `json:"center"`
	Selection string   `json:"selection,omitempty"`
}

const (
	// MinZoom and MaxZoom bound the zoom factor accepted by the viewport.
	MinZoom = 0.1
	MaxZoom = 4.0
)

// Filters is the structured facet set applied on top of the text query.
// All facets are pure predicates and never mutate nodes.
type Filters struct {
	ResourceTypes []string     `json:"resourceTypes,omitempty"`
	MinQuality    float64      `json:"minQuality"`
	DateRange     *[2]time.Time `json:"dateRange,omitempty"`
}

package export

import (
	"math"

	"github.com/lanternlab/lantern/pkg/graph"
)

const (
	scenePadding   = 48.0
	nodeRadius     = 10.0
	labelOffset    = 16.0
	edgeColor      = "#b0b0b0"
	conflictColor  = "#e15759"
	entityColor    = "#4e79a7"
	resourceColor  = "#9c755f"
	labelColor     = "#2b2b2b"
	backgroundHex  = "#ffffff"
	minSceneExtent = 200.0
)

// sceneBounds is the bounding box of all node positions plus padding,
// translated so the top-left corner is the drawing origin.
type sceneBounds struct {
	minX, minY float64
	width      float64
	height     float64
}

func boundsOf(nodes []graph.Node) sceneBounds {
	if len(nodes) == 0 {
		return sceneBounds{
			minX:   -minSceneExtent / 2,
			minY:   -minSceneExtent / 2,
			width:  minSceneExtent,
			height: minSceneExtent,
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, node := range nodes {
		minX = math.Min(minX, node.Position.X)
		minY = math.Min(minY, node.Position.Y)
		maxX = math.Max(maxX, node.Position.X)
		maxY = math.Max(maxY, node.Position.Y)
	}

	return sceneBounds{
		minX:   minX - scenePadding,
		minY:   minY - scenePadding,
		width:  maxX - minX + 2*scenePadding,
		height: maxY - minY + 2*scenePadding,
	}
}

// translate maps a graph position into drawing coordinates.
func (b sceneBounds) translate(p graph.Position) (float64, float64) {
	return p.X - b.minX, p.Y - b.minY
}

// nodeFill picks the rendered fill for a node: quality bucket color for
// scored resources, flat palette colors otherwise.
func nodeFill(node graph.Node) string {
	if node.Kind == graph.NodeKindEntity {
		return entityColor
	}
	if meta := node.Resource(); meta != nil && meta.QualityScore != nil {
		return graph.QualityColor(*meta.QualityScore)
	}
	return resourceColor
}

func edgeStroke(edge graph.Edge) string {
	if edge.IsContradiction {
		return conflictColor
	}
	return edgeColor
}

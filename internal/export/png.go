package export

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/view"
)

// pngScale renders rasters at twice the logical resolution.
const pngScale = 2.0

// WritePNG renders the view as a raster image at 2x logical
// resolution, using the same styling rules as the vector export.
func WritePNG(w io.Writer, v view.View) error {
	bounds := boundsOf(v.Nodes)

	width := int(bounds.width * pngScale)
	height := int(bounds.height * pngScale)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("degenerate scene bounds %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.Scale(pngScale, pngScale)

	dc.SetHexColor(backgroundHex)
	dc.Clear()

	positions := make(map[string]graph.Position, len(v.Nodes))
	for _, node := range v.Nodes {
		positions[node.ID] = node.Position
	}

	for _, edge := range v.Edges {
		source, okS := positions[edge.Source]
		target, okT := positions[edge.Target]
		if !okS || !okT {
			continue
		}
		x1, y1 := bounds.translate(source)
		x2, y2 := bounds.translate(target)

		dc.SetHexColor(edgeStroke(edge))
		dc.SetLineWidth(graph.EdgeStrokeWidth(edge.Strength))
		if edge.IsHiddenConnection || edge.IsResearchGap {
			dc.SetDash(6, 4)
		} else {
			dc.SetDash()
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
	dc.SetDash()

	for _, node := range v.Nodes {
		x, y := bounds.translate(node.Position)
		opacity := node.Opacity
		if opacity == 0 {
			opacity = 1
		}

		dc.SetHexColor(nodeFill(node))
		if opacity < 1 {
			dc.SetRGBA(dimChannel(nodeFill(node), opacity))
		}
		dc.DrawCircle(x, y, nodeRadius)
		dc.Fill()

		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(node.Label, x, y+nodeRadius+labelOffset, 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// dimChannel expands a hex color into RGBA channels with the given
// alpha applied.
func dimChannel(hex string, alpha float64) (float64, float64, float64, float64) {
	var r, g, b int
	_, _ = fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return float64(r) / 255, float64(g) / 255, float64(b) / 255, alpha
}

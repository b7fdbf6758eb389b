package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/view"
)

// WriteSVG renders the view as a standalone vector image. Edge stroke
// widths and node colors follow the canvas styling rules.
func WriteSVG(w io.Writer, v view.View) error {
	bounds := boundsOf(v.Nodes)

	positions := make(map[string]graph.Position, len(v.Nodes))
	for _, node := range v.Nodes {
		positions[node.ID] = node.Position
	}

	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		bounds.width, bounds.height, bounds.width, bounds.height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w,
		`  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundHex); err != nil {
		return err
	}

	for _, edge := range v.Edges {
		source, okS := positions[edge.Source]
		target, okT := positions[edge.Target]
		if !okS || !okT {
			continue
		}
		x1, y1 := bounds.translate(source)
		x2, y2 := bounds.translate(target)

		dash := ""
		if edge.IsHiddenConnection || edge.IsResearchGap {
			dash = ` stroke-dasharray="6 4"`
		}
		if _, err := fmt.Fprintf(w,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
			x1, y1, x2, y2, edgeStroke(edge), graph.EdgeStrokeWidth(edge.Strength), dash); err != nil {
			return err
		}
	}

	for _, node := range v.Nodes {
		x, y := bounds.translate(node.Position)
		opacity := node.Opacity
		if opacity == 0 {
			opacity = 1
		}
		if _, err := fmt.Fprintf(w,
			`  <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" opacity="%.2f"/>`+"\n",
			x, y, nodeRadius, nodeFill(node), opacity); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`  <text x="%.2f" y="%.2f" font-size="11" fill="%s" text-anchor="middle" opacity="%.2f">%s</text>`+"\n",
			x, y+nodeRadius+labelOffset, labelColor, opacity, escapeXML(node.Label)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

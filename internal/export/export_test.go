package export

import (
	"bytes"
	"image/png"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/view"
)

func quality(q float64) *float64 { return &q }

func sampleView() view.View {
	return view.View{
		Mode: view.ModeCityMap,
		Nodes: []graph.Node{
			{
				ID:       "r1",
				Kind:     graph.NodeKindResource,
				Label:    "Fish oil & Raynaud",
				Position: graph.Position{X: -50, Y: 0},
				Opacity:  1,
				Metadata: graph.ResourceMetadata{ResourceType: "paper", QualityScore: quality(0.9)},
			},
			{
				ID:       "e1",
				Kind:     graph.NodeKindEntity,
				Label:    "blood viscosity",
				Position: graph.Position{X: 70, Y: 40},
				Opacity:  0.3,
				Metadata: graph.EntityMetadata{EntityType: "mechanism", MentionCount: 12},
			},
		},
		Edges: []graph.Edge{
			{ID: "x1", Source: "r1", Target: "e1", RelationshipType: graph.RelationSemantic, Strength: 0.5, IsHiddenConnection: true},
		},
	}
}

func TestFilenamePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^graph-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.\d{9}Z\.(json|svg|png)$`)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	for _, format := range []Format{FormatJSON, FormatSVG, FormatPNG} {
		name := Filename(format, at)
		if !pattern.MatchString(name) {
			t.Errorf("Filename(%s) = %q, does not match pattern", format, name)
		}
		if strings.ContainsAny(name, ":/\\") {
			t.Errorf("Filename(%s) = %q contains unsafe characters", format, name)
		}
	}
}

func TestFilenamesDifferWithinSameSecond(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	first := Filename(FormatJSON, at)
	second := Filename(FormatJSON, at.Add(3*time.Millisecond))
	if first == second {
		t.Errorf("exports in the same second collide: %q", first)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v := sampleView()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, v); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	snapshot, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got := snapshot.NodeCount(); got != len(v.Nodes) {
		t.Errorf("round trip produced %d nodes, want %d", got, len(v.Nodes))
	}
	if got := len(snapshot.Edges()); got != len(v.Edges) {
		t.Errorf("round trip produced %d edges, want %d", got, len(v.Edges))
	}

	node := snapshot.Node("r1")
	if node == nil {
		t.Fatal("round trip lost node r1")
	}
	meta := node.Resource()
	if meta == nil || meta.QualityScore == nil || *meta.QualityScore != 0.9 {
		t.Errorf("resource metadata lost in round trip: %+v", node.Metadata)
	}
}

func TestSVGContainsStyledElements(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sampleView()); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	svg := buf.String()

	if !strings.Contains(svg, `stroke-width="3.00"`) {
		t.Error("edge with strength 0.5 should render at width 3")
	}
	if !strings.Contains(svg, graph.QualityColorGreen) {
		t.Error("high-quality resource should use the green bucket")
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("hidden connection should render dashed")
	}
	if !strings.Contains(svg, "Fish oil &amp; Raynaud") {
		t.Error("labels must be XML-escaped")
	}
}

func TestPNGRendersAtDoubleResolution(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, sampleView()); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}

	// Positions span 120x40; padding 48 on each side, all doubled.
	wantW := int((120 + 2*48.0) * pngScale)
	wantH := int((40 + 2*48.0) * pngScale)
	size := img.Bounds().Size()
	if size.X != wantW || size.Y != wantH {
		t.Errorf("png size = %v, want %dx%d", size, wantW, wantH)
	}
}

func TestExporterWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir)
	exporter.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	path, err := exporter.Export(sampleView(), FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), `"nodeCount": 2`) {
		t.Errorf("artifact missing metadata: %s", data)
	}

	if _, err := exporter.Export(sampleView(), Format("gif")); err == nil {
		t.Error("expected error for unknown format")
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/internal/keymap"
	mid "github.com/lanternlab/lantern/internal/server/middleware"
	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/view"
)

type stubUpstream struct {
	nodes      []graph.Node
	edges      []graph.Edge
	hypotheses []graph.Hypothesis
}

func (s *stubUpstream) GetOverview(ctx context.Context, threshold float64) ([]graph.Node, []graph.Edge, error) {
	return s.nodes, s.edges, nil
}

func (s *stubUpstream) GetNeighbors(ctx context.Context, resourceID string) ([]graph.Node, []graph.Edge, error) {
	return s.nodes, s.edges, nil
}

func (s *stubUpstream) GetEntities(ctx context.Context) ([]graph.Node, error) {
	return s.nodes, nil
}

func (s *stubUpstream) DiscoverHypotheses(ctx context.Context, entityA, entityC string) ([]graph.Hypothesis, error) {
	return s.hypotheses, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *view.Controller) {
	t.Helper()

	stub := &stubUpstream{
		nodes: []graph.Node{
			{ID: "a", Kind: graph.NodeKindEntity, Label: "a"},
			{ID: "b", Kind: graph.NodeKindEntity, Label: "b"},
			{ID: "c", Kind: graph.NodeKindEntity, Label: "c"},
		},
		hypotheses: []graph.Hypothesis{
			{ID: "h1", Confidence: 0.8, Nodes: []string{"a", "b", "c"}},
		},
	}

	controller := view.NewController(view.Params{Source: stub, Discovery: stub})
	if err := controller.RefreshOverview(context.Background(), 0); err != nil {
		t.Fatalf("seeding snapshot: %v", err)
	}

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	hub := NewHub()
	e.Use(mid.AppContextMiddleware(&mid.App{
		Controller: controller,
		Exporter:   export.NewExporter(t.TempDir()),
		Upstream:   stub,
		Keymap:     keymap.Default(),
		Notifier:   hub,
	}))
	RegisterRoutes(e, hub)

	return e, controller
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoute(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health returned %d", rec.Code)
	}
}

func TestGetGraphReturnsDerivedView(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/graph", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var v view.View
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	if len(v.Nodes) != 3 {
		t.Errorf("view has %d nodes, want 3", len(v.Nodes))
	}
	if v.Mode != view.ModeCityMap {
		t.Errorf("mode = %s", v.Mode)
	}
}

func TestSetModeValidation(t *testing.T) {
	e, controller := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/view/mode", `{"mode": "blast-radius"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if controller.Mode() != view.ModeBlastRadius {
		t.Errorf("mode = %s", controller.Mode())
	}

	rec = doJSON(e, http.MethodPost, "/api/view/mode", `{"mode": "fisheye"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown mode returned %d", rec.Code)
	}
	rec = doJSON(e, http.MethodPost, "/api/view/mode", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing mode returned %d", rec.Code)
	}
}

func TestSelectionRoutes(t *testing.T) {
	e, controller := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/selection", `{"nodeId": "a"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if controller.Viewport().Selection != "a" {
		t.Errorf("selection = %q", controller.Viewport().Selection)
	}

	rec = doJSON(e, http.MethodPost, "/api/selection", `{"nodeId": "ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown node returned %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/selection", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear returned %d", rec.Code)
	}
	if controller.Viewport().Selection != "" {
		t.Error("selection not cleared")
	}
}

func TestDiscoveryRouteRejectsSameEntity(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/discovery", `{"entityA": "a", "entityC": "a"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("same-entity discovery returned %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/discovery", `{"entityA": "a", "entityC": "c"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("discovery returned %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(e, http.MethodGet, "/api/hypotheses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("hypotheses returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"h1"`) {
		t.Errorf("hypotheses body missing result: %s", rec.Body)
	}
}

func TestSelectHypothesisRoute(t *testing.T) {
	e, controller := newTestServer(t)
	doJSON(e, http.MethodPost, "/api/discovery", `{"entityA": "a", "entityC": "c"}`)

	rec := doJSON(e, http.MethodPost, "/api/hypotheses/h1/select", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("select returned %d, body %s", rec.Code, rec.Body)
	}
	if controller.Mode() != view.ModeHypothesis {
		t.Errorf("mode = %s", controller.Mode())
	}

	rec = doJSON(e, http.MethodPost, "/api/hypotheses/ghost/select", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown hypothesis returned %d", rec.Code)
	}
}

func TestExportRoute(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/export", `{"format": "json"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("export returned %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "graph-") {
		t.Errorf("export response missing path: %s", rec.Body)
	}

	rec = doJSON(e, http.MethodPost, "/api/export", `{"format": "gif"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format returned %d", rec.Code)
	}
}

func TestKeyPressRoute(t *testing.T) {
	e, controller := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/keys", `{"key": "+"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("key press returned %d", rec.Code)
	}
	if got := controller.Viewport().Zoom; got <= 1 {
		t.Errorf("zoom = %v after zoom-in key", got)
	}

	rec = doJSON(e, http.MethodPost, "/api/keys", `{"key": "q"}`)
	if !strings.Contains(rec.Body.String(), `"bound":false`) {
		t.Errorf("unbound key response: %s", rec.Body)
	}
}

func TestFiltersRouteValidation(t *testing.T) {
	e, controller := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/filters", `{"resourceTypes": ["paper"], "minQuality": 0.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("filters returned %d, body %s", rec.Code, rec.Body)
	}
	if got := controller.Filters().MinQuality; got != 0.5 {
		t.Errorf("minQuality = %v", got)
	}

	rec = doJSON(e, http.MethodPost, "/api/filters", `{"minQuality": 7}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range quality returned %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/filters", `{"dateRange": ["not-a-date", "also-not"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed dates returned %d", rec.Code)
	}
}

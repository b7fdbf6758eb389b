// Package view holds the single authoritative state container of the
// graph explorer. All derived data — the filtered render set, focus
// opacities, layout positions — is computed on read from this state and
// memoized, never stored redundantly.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lanternlab/lantern/pkg/discovery"
	"github.com/lanternlab/lantern/pkg/filter"
	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/logger"
)

const (
	zoomStep = 1.25
	// largeGraphThreshold is the node count past which layout runs as a
	// cancellable background job instead of inline on the read path.
	largeGraphThreshold = 1000
)

var (
	// ErrUnknownHypothesis reports a hypothesis id absent from the
	// current result set.
	ErrUnknownHypothesis = errors.New("hypothesis not in current result set")
	// ErrNotNavigable reports a hypothesis whose path no longer resolves
	// in the live snapshot.
	ErrNotNavigable = errors.New("hypothesis path does not resolve in the current snapshot")
)

// SnapshotSource is the snapshot-serving side of the external graph
// service.
type SnapshotSource interface {
	GetOverview(ctx context.Context, threshold float64) ([]graph.Node, []graph.Edge, error)
	GetNeighbors(ctx context.Context, resourceID string) ([]graph.Node, []graph.Edge, error)
}

// Controller owns the interaction state: snapshot, view mode, viewport,
// selection, filters, search query, focus flag, and the discovery
// workflow. It is safe for concurrent use; the mutex makes it the single
// logical writer of all held state.
type Controller struct {
	source   SnapshotSource
	workflow *discovery.Workflow
	searchDB *filter.Debouncer

	mu               sync.Mutex
	snapshot         *graph.Snapshot
	mode             Mode
	viewport         graph.ViewportState
	filters          graph.Filters
	query            string
	focusEnabled     bool
	activeHypothesis string

	refreshSeq uint64
	layoutSeq  uint64
	layoutStop context.CancelFunc

	// pinned holds positions the user dragged; they override the layout
	// engine until the next full re-layout.
	pinned map[string]graph.Position

	filterMemo filterMemo
	layoutMemo layoutMemo
}

// Params configures a new Controller.
type Params struct {
	Source SnapshotSource
	// Discovery may share the source implementation; it is kept separate
	// so tests can fake either side independently.
	Discovery discovery.Service
	// Scheduler drives search debouncing. Nil selects real timers.
	Scheduler filter.Scheduler
}

// NewController creates a controller with an empty snapshot, city-map
// mode, and a neutral viewport.
func NewController(params Params) *Controller {
	return &Controller{
		source:   params.Source,
		workflow: discovery.NewWorkflow(params.Discovery),
		searchDB: filter.NewDebouncer(filter.DebounceDelay, params.Scheduler),
		snapshot: graph.Empty(),
		mode:     ModeCityMap,
		viewport: graph.ViewportState{Zoom: 1},
		pinned:   map[string]graph.Position{},
	}
}

// Snapshot returns the current snapshot.
func (c *Controller) Snapshot() *graph.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Mode returns the active view mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the view mode, which re-triggers layout with the
// mode's algorithm and releases all dragged positions.
func (c *Controller) SetMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown view mode %q", mode)
	}
	c.mu.Lock()
	if mode == c.mode {
		c.mu.Unlock()
		return nil
	}
	c.mode = mode
	c.releaseDragsLocked()
	c.mu.Unlock()
	c.ScheduleLayout(context.Background())
	return nil
}

// Viewport returns the current viewport state.
func (c *Controller) Viewport() graph.ViewportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// SetZoom clamps the requested zoom into [MinZoom, MaxZoom].
func (c *Controller) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Zoom = clampZoom(zoom)
}

// ZoomIn zooms one step in.
func (c *Controller) ZoomIn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Zoom = clampZoom(c.viewport.Zoom * zoomStep)
}

// ZoomOut zooms one step out.
func (c *Controller) ZoomOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Zoom = clampZoom(c.viewport.Zoom / zoomStep)
}

// Pan moves the viewport center.
func (c *Controller) Pan(center graph.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Center = center
}

// ResetView restores zoom 1.0 centered on the origin.
func (c *Controller) ResetView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Zoom = 1
	c.viewport.Center = graph.Position{}
}

// Select marks a node as the current selection. Selecting an id that is
// not live is an error and leaves state untouched.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.snapshot.HasNode(id) {
		return fmt.Errorf("cannot select unknown node %q", id)
	}
	c.viewport.Selection = id
	return nil
}

// ClearSelection drops the selection and any active hypothesis.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.Selection = ""
	c.activeHypothesis = ""
}

// Filters returns the active facet set.
func (c *Controller) Filters() graph.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetFilters replaces the facet set; the visible subset is re-derived on
// the next read.
func (c *Controller) SetFilters(filters graph.Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = filters
}

// Query returns the committed search query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Search commits the query after the debounce window; rapid successive
// calls collapse so only the last query within the window is evaluated.
func (c *Controller) Search(query string) {
	c.searchDB.Call(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.query = strings.TrimSpace(query)
	})
}

// SetFocusEnabled toggles focus mode. The derivation is pure, so
// toggling is idempotent and takes effect on the next read.
func (c *Controller) SetFocusEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusEnabled = enabled
}

// FocusEnabled reports whether focus mode is active.
func (c *Controller) FocusEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focusEnabled
}

// ToggleFocus flips focus mode and returns the new state.
func (c *Controller) ToggleFocus() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusEnabled = !c.focusEnabled
	return c.focusEnabled
}

func clampZoom(zoom float64) float64 {
	if zoom < graph.MinZoom {
		return graph.MinZoom
	}
	if zoom > graph.MaxZoom {
		return graph.MaxZoom
	}
	return zoom
}

// RefreshOverview fetches a fresh overview snapshot. A newer refresh
// supersedes this one: its response is discarded at apply time.
func (c *Controller) RefreshOverview(ctx context.Context, threshold float64) error {
	seq := c.nextRefreshSeq()
	nodes, edges, err := c.source.GetOverview(ctx, threshold)
	if err != nil {
		return fmt.Errorf("failed to fetch overview snapshot: %w", err)
	}
	if c.applySnapshot(seq, nodes, edges) {
		c.ScheduleLayout(ctx)
	}
	return nil
}

// LoadNeighbors fetches the 1-hop neighborhood of a resource and makes
// it the current snapshot, selecting the resource as the radial center.
func (c *Controller) LoadNeighbors(ctx context.Context, resourceID string) error {
	seq := c.nextRefreshSeq()
	nodes, edges, err := c.source.GetNeighbors(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("failed to fetch neighborhood of %s: %w", resourceID, err)
	}
	if c.applySnapshot(seq, nodes, edges) {
		c.mu.Lock()
		if c.snapshot.HasNode(resourceID) {
			c.viewport.Selection = resourceID
		}
		c.mu.Unlock()
		c.ScheduleLayout(ctx)
	}
	return nil
}

// ReplaceSnapshot installs an already-normalized snapshot directly,
// bypassing the source. Used by snapshot re-ingest (JSON import).
func (c *Controller) ReplaceSnapshot(s *graph.Snapshot) {
	seq := c.nextRefreshSeq()
	c.mu.Lock()
	if seq != c.refreshSeq {
		c.mu.Unlock()
		return
	}
	c.installSnapshotLocked(s)
	c.mu.Unlock()
	c.ScheduleLayout(context.Background())
}

func (c *Controller) nextRefreshSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshSeq++
	return c.refreshSeq
}

// applySnapshot installs the fetched snapshot unless a newer refresh
// superseded this one. Reports whether the snapshot was applied.
func (c *Controller) applySnapshot(seq uint64, nodes []graph.Node, edges []graph.Edge) bool {
	s := graph.IngestSnapshot(nodes, edges)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.refreshSeq {
		logger.Debug("[View] Discarding superseded snapshot", "seq", seq, "current", c.refreshSeq)
		return false
	}
	c.installSnapshotLocked(s)
	return true
}

func (c *Controller) installSnapshotLocked(s *graph.Snapshot) {
	c.snapshot = s
	c.releaseDragsLocked()
	// Selection survives a refresh only while the node stays live.
	if c.viewport.Selection != "" && !s.HasNode(c.viewport.Selection) {
		c.viewport.Selection = ""
	}
}

// Discovery returns the hypothesis workflow.
func (c *Controller) Discovery() *discovery.Workflow {
	return c.workflow
}

// Discover runs a hypothesis discovery request for the entity pair.
func (c *Controller) Discover(ctx context.Context, entityA, entityC string) error {
	return c.workflow.Discover(ctx, entityA, entityC)
}

// SelectHypothesis activates a hypothesis from the current result set:
// its first path node becomes the selection, with the same side effects
// as a manual node click, and hypothesis mode lays out its path. A
// hypothesis whose path no longer resolves is not navigable.
func (c *Controller) SelectHypothesis(id string) error {
	var target *graph.Hypothesis
	for _, h := range c.workflow.State().Hypotheses {
		if h.ID == id {
			target = &h
			break
		}
	}
	if target == nil {
		return fmt.Errorf("unknown hypothesis %q: %w", id, ErrUnknownHypothesis)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.snapshot.ResolvesPath(target.Nodes) {
		return fmt.Errorf("hypothesis %q: %w", id, ErrNotNavigable)
	}
	c.activeHypothesis = id
	c.viewport.Selection = target.Nodes[0]
	if c.mode != ModeHypothesis {
		c.mode = ModeHypothesis
		c.releaseDragsLocked()
	}
	return nil
}

// ClearHypotheses drops the discovery result set and leaves hypothesis
// mode if it was active.
func (c *Controller) ClearHypotheses() {
	c.workflow.Clear()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeHypothesis = ""
	if c.mode == ModeHypothesis {
		c.mode = ModeCityMap
		c.releaseDragsLocked()
	}
}

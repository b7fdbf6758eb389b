package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/lanternlab/lantern/pkg/discovery"
	"github.com/lanternlab/lantern/pkg/filter"
	"github.com/lanternlab/lantern/pkg/focus"
	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/layout"
	"github.com/lanternlab/lantern/pkg/logger"
)

// HypothesisItem pairs a hypothesis with its derived navigability in the
// current snapshot.
type HypothesisItem struct {
	graph.Hypothesis
	Navigable bool `json:"navigable"`
}

// View is the fully derived render set handed to the canvas: visible
// nodes with positions and opacity applied, visible edges, query
// highlights, and the hypothesis side list.
type View struct {
	Mode        Mode                `json:"mode"`
	Viewport    graph.ViewportState `json:"viewport"`
	Nodes       []graph.Node        `json:"nodes"`
	Edges       []graph.Edge        `json:"edges"`
	MatchingIDs []string            `json:"matchingIds"`
	Phase       discovery.Phase     `json:"discoveryPhase"`
	Hypotheses  []HypothesisItem    `json:"hypotheses"`
}

// filterMemo caches the last filter evaluation keyed by the inputs that
// feed it.
type filterMemo struct {
	key    string
	result filter.Result
}

// layoutMemo caches the last layout keyed by (snapshot version, mode,
// layout inputs).
type layoutMemo struct {
	key       string
	positions map[string]graph.Position
}

// View derives the complete render state. Filter and layout results are
// memoized on their input keys; focus opacity is rederived every call.
func (c *Controller) View() View {
	workflowState := c.workflow.State()

	c.mu.Lock()
	defer c.mu.Unlock()

	result := c.filterResultLocked()
	positions := c.layoutLocked()
	opacity := focus.Apply(c.snapshot, c.viewport.Selection, c.focusEnabled)

	nodes := make([]graph.Node, len(result.VisibleNodes))
	copy(nodes, result.VisibleNodes)
	for i := range nodes {
		if pos, ok := c.pinned[nodes[i].ID]; ok {
			nodes[i].Position = pos
		} else if pos, ok := positions[nodes[i].ID]; ok {
			nodes[i].Position = pos
		}
		nodes[i].Opacity = opacity[nodes[i].ID]
	}

	items := make([]HypothesisItem, 0, len(workflowState.Hypotheses))
	for _, h := range workflowState.Hypotheses {
		items = append(items, HypothesisItem{
			Hypothesis: h,
			Navigable:  c.snapshot.ResolvesPath(h.Nodes),
		})
	}

	return View{
		Mode:        c.mode,
		Viewport:    c.viewport,
		Nodes:       nodes,
		Edges:       result.VisibleEdges,
		MatchingIDs: result.MatchingIDs,
		Phase:       workflowState.Phase,
		Hypotheses:  items,
	}
}

func (c *Controller) filterResultLocked() filter.Result {
	key := fmt.Sprintf("%d|%s|%s|%v|%v",
		c.snapshot.Version(), c.query, strings.Join(c.filters.ResourceTypes, ","),
		c.filters.MinQuality, c.filters.DateRange)
	if c.filterMemo.key != key {
		c.filterMemo = filterMemo{
			key:    key,
			result: filter.Apply(c.snapshot, c.query, c.filters),
		}
	}
	return c.filterMemo.result
}

func (c *Controller) layoutLocked() map[string]graph.Position {
	params := c.layoutParamsLocked()
	key := fmt.Sprintf("%d|%s|%s|%s",
		c.snapshot.Version(), c.mode, params.CenterID, strings.Join(params.Path, ","))
	if c.layoutMemo.key != key {
		c.layoutMemo = layoutMemo{
			key:       key,
			positions: layout.Compute(c.snapshot, c.mode.Algorithm(), params),
		}
	}
	return c.layoutMemo.positions
}

func (c *Controller) layoutParamsLocked() layout.Params {
	params := layout.Params{}
	switch c.mode {
	case ModeBlastRadius:
		params.CenterID = c.viewport.Selection
	case ModeHypothesis:
		if c.activeHypothesis != "" {
			for _, h := range c.workflow.State().Hypotheses {
				if h.ID == c.activeHypothesis {
					params.Path = h.Nodes
					break
				}
			}
		}
	}
	return params
}

// ScheduleLayout precomputes the layout of a large snapshot off the read
// path. A newer schedule cancels the running job; a cancelled job's
// result is discarded. Small graphs are computed inline by View and the
// call is a no-op for them.
func (c *Controller) ScheduleLayout(ctx context.Context) {
	c.mu.Lock()
	if c.snapshot.NodeCount() <= largeGraphThreshold {
		c.mu.Unlock()
		return
	}
	c.layoutSeq++
	seq := c.layoutSeq
	if c.layoutStop != nil {
		c.layoutStop()
	}
	jobCtx, cancel := context.WithCancel(ctx)
	c.layoutStop = cancel
	snapshot := c.snapshot
	mode := c.mode
	params := c.layoutParamsLocked()
	c.mu.Unlock()

	go func() {
		defer cancel()
		positions := layout.Compute(snapshot, mode.Algorithm(), params)
		if jobCtx.Err() != nil {
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.layoutSeq || snapshot.Version() != c.snapshot.Version() {
			logger.Debug("[View] Discarding superseded layout job", "seq", seq)
			return
		}
		c.layoutMemo = layoutMemo{
			key: fmt.Sprintf("%d|%s|%s|%s",
				snapshot.Version(), mode, params.CenterID, strings.Join(params.Path, ",")),
			positions: positions,
		}
	}()
}

// BeginDrag transfers ownership of a node's position from the layout
// engine to the user. Returns an error for unknown nodes.
func (c *Controller) BeginDrag(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.snapshot.HasNode(id) {
		return fmt.Errorf("cannot drag unknown node %q", id)
	}
	if pos, ok := c.layoutMemo.positions[id]; ok {
		c.pinned[id] = pos
	} else {
		c.pinned[id] = graph.Position{}
	}
	return nil
}

// DragTo moves a dragged node. The position sticks until the next full
// re-layout.
func (c *Controller) DragTo(id string, pos graph.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pinned[id]; !ok {
		return fmt.Errorf("node %q is not being dragged", id)
	}
	c.pinned[id] = pos
	return nil
}

// releaseDragsLocked returns position ownership to the layout engine.
// Called on every full re-layout: mode switches and snapshot refreshes.
func (c *Controller) releaseDragsLocked() {
	if len(c.pinned) > 0 {
		c.pinned = map[string]graph.Position{}
	}
}

// Package discovery orchestrates Literature-Based-Discovery requests: a
// user names two entities A and C and the external graph service returns
// ranked hypothesis paths connecting them through intermediates.
package discovery

import (
	"context"
	"errors"
	"sync"

	"github.com/lanternlab/lantern/pkg/graph"
	"github.com/lanternlab/lantern/pkg/logger"
)

// Phase is the discovery state machine position.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseEmpty      Phase = "empty"
	PhaseFailed     Phase = "failed"
)

// Local validation failures; no network call is issued for these.
var (
	ErrSameEntity    = errors.New("discovery requires two distinct entities")
	ErrMissingEntity = errors.New("discovery requires both entity ids")
)

// Service is the discovery capability of the external graph service.
type Service interface {
	DiscoverHypotheses(ctx context.Context, entityA, entityC string) ([]graph.Hypothesis, error)
}

// State is a point-in-time view of the workflow.
//
// An Empty phase is a successful terminal state: the request worked and
// produced zero hypotheses. Only Failed carries an error.
type State struct {
	Phase      Phase
	EntityA    string
	EntityC    string
	Hypotheses []graph.Hypothesis
	Err        error
}

// Workflow issues discovery requests with last-request-wins semantics:
// starting a new request supersedes any in-flight one, and a superseded
// response is discarded at apply time no matter when it arrives.
type Workflow struct {
	service Service

	mu     sync.Mutex
	seq    uint64
	state  State
	cancel context.CancelFunc
}

// NewWorkflow creates an idle workflow backed by the given service.
func NewWorkflow(service Service) *Workflow {
	return &Workflow{
		service: service,
		state:   State{Phase: PhaseIdle},
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Clear drops the current hypothesis set and returns to Idle. An
// in-flight request is cancelled and its response will be discarded.
func (w *Workflow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state = State{Phase: PhaseIdle}
}

// Request identifies one discovery attempt for apply-time sequencing.
type Request struct {
	seq     uint64
	EntityA string
	EntityC string
}

// Begin validates the entity pair and transitions to Requesting. The
// validation is purely local: a rejected pair never reaches the network.
// Beginning a request supersedes and cancels any in-flight one.
func (w *Workflow) Begin(entityA, entityC string) (*Request, error) {
	if entityA == "" || entityC == "" {
		return nil, ErrMissingEntity
	}
	if entityA == entityC {
		return nil, ErrSameEntity
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state = State{Phase: PhaseRequesting, EntityA: entityA, EntityC: entityC}

	return &Request{seq: w.seq, EntityA: entityA, EntityC: entityC}, nil
}

// Resolve applies the outcome of a request. Superseded requests are
// discarded silently, so state only ever reflects the latest Begin.
// Hypotheses keep the order the service returned; ranking is the
// service's responsibility.
func (w *Workflow) Resolve(req *Request, hypotheses []graph.Hypothesis, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if req.seq != w.seq {
		logger.Debug("[Discovery] Discarding superseded response",
			"entity_a", req.EntityA, "entity_c", req.EntityC)
		return
	}
	w.cancel = nil

	switch {
	case err != nil:
		w.state = State{Phase: PhaseFailed, EntityA: req.EntityA, EntityC: req.EntityC, Err: err}
	case len(hypotheses) == 0:
		w.state = State{Phase: PhaseEmpty, EntityA: req.EntityA, EntityC: req.EntityC, Hypotheses: []graph.Hypothesis{}}
	default:
		w.state = State{Phase: PhaseSucceeded, EntityA: req.EntityA, EntityC: req.EntityC, Hypotheses: hypotheses}
	}
}

// Discover runs one full request against the service: Begin, exactly one
// network call, Resolve. It returns the local validation error, or the
// service error when this request was still current at resolution.
func (w *Workflow) Discover(ctx context.Context, entityA, entityC string) error {
	req, err := w.Begin(entityA, entityC)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.mu.Lock()
	if req.seq == w.seq {
		w.cancel = cancel
	}
	w.mu.Unlock()

	hypotheses, err := w.service.DiscoverHypotheses(ctx, entityA, entityC)
	w.Resolve(req, hypotheses, err)
	return err
}

package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/lanternlab/lantern/pkg/graph"
)

type countingService struct {
	calls      int
	hypotheses []graph.Hypothesis
	err        error
}

func (s *countingService) DiscoverHypotheses(ctx context.Context, entityA, entityC string) ([]graph.Hypothesis, error) {
	s.calls++
	return s.hypotheses, s.err
}

func hypothesis(id string, path ...string) graph.Hypothesis {
	return graph.Hypothesis{ID: id, Type: "abc", Confidence: 0.7, Nodes: path}
}

func TestDiscoverRejectsLocallyWithoutNetworkCall(t *testing.T) {
	tests := []struct {
		name    string
		entityA string
		entityC string
		wantErr error
	}{
		{name: "same entity", entityA: "x", entityC: "x", wantErr: ErrSameEntity},
		{name: "missing A", entityA: "", entityC: "x", wantErr: ErrMissingEntity},
		{name: "missing C", entityA: "x", entityC: "", wantErr: ErrMissingEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &countingService{}
			w := NewWorkflow(service)

			err := w.Discover(context.Background(), tt.entityA, tt.entityC)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Discover() error = %v, want %v", err, tt.wantErr)
			}
			if service.calls != 0 {
				t.Errorf("local rejection issued %d network calls", service.calls)
			}
			if got := w.State().Phase; got != PhaseIdle {
				t.Errorf("phase = %v, want idle after local rejection", got)
			}
		})
	}
}

func TestDiscoverTerminalPhases(t *testing.T) {
	tests := []struct {
		name       string
		hypotheses []graph.Hypothesis
		err        error
		wantPhase  Phase
	}{
		{
			name:       "results succeed",
			hypotheses: []graph.Hypothesis{hypothesis("h1", "a", "b", "c")},
			wantPhase:  PhaseSucceeded,
		},
		{
			name:      "zero hypotheses is empty, not failed",
			wantPhase: PhaseEmpty,
		},
		{
			name:      "service error fails",
			err:       errors.New("upstream down"),
			wantPhase: PhaseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkflow(&countingService{hypotheses: tt.hypotheses, err: tt.err})

			err := w.Discover(context.Background(), "a", "c")
			state := w.State()

			if state.Phase != tt.wantPhase {
				t.Errorf("phase = %v, want %v", state.Phase, tt.wantPhase)
			}
			if tt.err != nil {
				if err == nil || state.Err == nil {
					t.Error("expected service error to surface")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantPhase == PhaseEmpty && state.Err != nil {
				t.Error("empty result must not carry an error")
			}
		})
	}
}

func TestResolveKeepsServiceOrder(t *testing.T) {
	ordered := []graph.Hypothesis{
		hypothesis("low", "a", "x", "c"),
		hypothesis("high", "a", "y", "c"),
	}
	w := NewWorkflow(&countingService{hypotheses: ordered})

	if err := w.Discover(context.Background(), "a", "c"); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	state := w.State()
	if len(state.Hypotheses) != 2 || state.Hypotheses[0].ID != "low" || state.Hypotheses[1].ID != "high" {
		t.Errorf("hypothesis order changed: %+v", state.Hypotheses)
	}
}

func TestSupersededResponseDiscardedRegardlessOfArrivalOrder(t *testing.T) {
	tests := []struct {
		name          string
		resolveOldest bool
	}{
		{name: "stale response arrives last", resolveOldest: false},
		{name: "stale response arrives first", resolveOldest: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkflow(&countingService{})

			first, err := w.Begin("a", "c")
			if err != nil {
				t.Fatalf("Begin(a,c) error = %v", err)
			}
			second, err := w.Begin("a", "d")
			if err != nil {
				t.Fatalf("Begin(a,d) error = %v", err)
			}

			firstResult := []graph.Hypothesis{hypothesis("stale", "a", "m", "c")}
			secondResult := []graph.Hypothesis{hypothesis("fresh", "a", "n", "d")}

			if tt.resolveOldest {
				w.Resolve(first, firstResult, nil)
				w.Resolve(second, secondResult, nil)
			} else {
				w.Resolve(second, secondResult, nil)
				w.Resolve(first, firstResult, nil)
			}

			state := w.State()
			if state.Phase != PhaseSucceeded {
				t.Fatalf("phase = %v, want succeeded", state.Phase)
			}
			if state.EntityC != "d" {
				t.Errorf("state reflects pair (a,%s), want (a,d)", state.EntityC)
			}
			if len(state.Hypotheses) != 1 || state.Hypotheses[0].ID != "fresh" {
				t.Errorf("state carries %+v, want only the fresh response", state.Hypotheses)
			}
		})
	}
}

func TestClearReturnsToIdleAndSupersedes(t *testing.T) {
	w := NewWorkflow(&countingService{})

	req, err := w.Begin("a", "c")
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	w.Clear()
	w.Resolve(req, []graph.Hypothesis{hypothesis("late", "a", "b", "c")}, nil)

	state := w.State()
	if state.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle after clear", state.Phase)
	}
	if len(state.Hypotheses) != 0 {
		t.Errorf("cleared workflow still holds hypotheses: %+v", state.Hypotheses)
	}
}

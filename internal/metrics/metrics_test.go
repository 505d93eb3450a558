package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounterVecsIncrementByLabel(t *testing.T) {
	ComputeLayoutTotal.Reset()

	ComputeLayoutTotal.WithLabelValues("force", "ok").Inc()
	ComputeLayoutTotal.WithLabelValues("force", "ok").Inc()
	ComputeLayoutTotal.WithLabelValues("grid", "invalid_graph").Inc()

	if got := testutil.ToFloat64(ComputeLayoutTotal.WithLabelValues("force", "ok")); got != 2 {
		t.Errorf("expected force/ok count 2, got %v", got)
	}
	if got := testutil.ToFloat64(ComputeLayoutTotal.WithLabelValues("grid", "invalid_graph")); got != 1 {
		t.Errorf("expected grid/invalid_graph count 1, got %v", got)
	}
}

func TestPlainCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(SimulationDivergedTotal)
	SimulationDivergedTotal.Inc()
	if after := testutil.ToFloat64(SimulationDivergedTotal); after != before+1 {
		t.Errorf("expected SimulationDivergedTotal to increment by 1, got %v -> %v", before, after)
	}

	before = testutil.ToFloat64(CollisionUnresolvedTotal)
	CollisionUnresolvedTotal.Inc()
	if after := testutil.ToFloat64(CollisionUnresolvedTotal); after != before+1 {
		t.Errorf("expected CollisionUnresolvedTotal to increment by 1, got %v -> %v", before, after)
	}
}

func TestWebSocketConnectionsGaugeTracksIncDec(t *testing.T) {
	WebSocketConnections.Set(0)

	WebSocketConnections.Inc()
	WebSocketConnections.Inc()
	if got := testutil.ToFloat64(WebSocketConnections); got != 2 {
		t.Errorf("expected gauge at 2 after two Inc calls, got %v", got)
	}

	WebSocketConnections.Dec()
	if got := testutil.ToFloat64(WebSocketConnections); got != 1 {
		t.Errorf("expected gauge at 1 after one Dec call, got %v", got)
	}
}

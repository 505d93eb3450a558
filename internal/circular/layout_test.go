package circular

import (
	"math"
	"testing"
)

func TestAssignRingsCentreIsHighestDegree(t *testing.T) {
	// hub has degree 3, everyone else degree 1.
	nodes := []Node{{ID: "a"}, {ID: "hub"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{
		{Source: "hub", Target: "a"},
		{Source: "hub", Target: "b"},
		{Source: "hub", Target: "c"},
	}
	rings := Rings(nodes, edges)
	if rings["hub"] != 0 {
		t.Fatalf("expected hub at ring 0, got %d", rings["hub"])
	}
	for _, id := range []string{"a", "b", "c"} {
		if rings[id] != 1 {
			t.Fatalf("expected %s at ring 1, got %d", id, rings[id])
		}
	}
}

func TestAssignRingsBFSHopCount(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "d"},
	}
	// b and c both have degree 2; b comes first in input order, so it is
	// the centre and hop counts are measured from it.
	rings := Rings(nodes, edges)
	if rings["b"] != 0 || rings["a"] != 1 || rings["c"] != 1 || rings["d"] != 2 {
		t.Fatalf("expected hop counts from centre b: b=0 a=1 c=1 d=2, got %v", rings)
	}
}

func TestAssignRingsDisconnectedComponentGetsFreshRing(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "isolated"}}
	edges := []Edge{{Source: "a", Target: "b"}}
	rings := Rings(nodes, edges)
	if rings["isolated"] <= rings["b"] {
		t.Fatalf("expected isolated component's ring to exceed the max connected ring, got isolated=%d b=%d", rings["isolated"], rings["b"])
	}
}

func TestLayoutRingMonotonicity(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}
	cfg := DefaultConfig()
	cfg.Radius = 50
	positions := Layout(nodes, edges, cfg)

	// b has the highest degree, so it is the centre; a and c are ring 1.
	dist := func(p Position) float64 { return math.Hypot(p.X, p.Y) }
	if math.Abs(dist(positions["b"])-0) > 1 {
		t.Fatalf("expected centre node at distance 0, got %f", dist(positions["b"]))
	}
	if math.Abs(dist(positions["a"])-50) > 1 {
		t.Fatalf("expected ring-1 node a at distance radius, got %f", dist(positions["a"]))
	}
	if math.Abs(dist(positions["c"])-50) > 1 {
		t.Fatalf("expected ring-1 node c at distance radius, got %f", dist(positions["c"]))
	}
}

func TestLayoutSingleNode(t *testing.T) {
	nodes := []Node{{ID: "solo"}}
	positions := Layout(nodes, nil, DefaultConfig())
	p := positions["solo"]
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("expected single node at origin, got %v", p)
	}
}

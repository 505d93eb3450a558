package spatial

import (
	"math"
	"testing"
)

func TestBarnesHutRepulsionPushesAway(t *testing.T) {
	bodies := []BarnesHutBody{
		{ID: "a", X: 0, Y: 0, Mass: 1},
		{ID: "b", X: 100, Y: 0, Mass: 1},
	}
	tree := BuildBarnesHutTree(bodies, DefaultTheta)

	fx, fy := tree.Repulsion("a", 0, 0, 1, 1000)
	if fx >= 0 {
		t.Fatalf("expected body a to be pushed in -x direction, got fx=%f", fx)
	}
	if math.Abs(fy) > 1e-9 {
		t.Fatalf("expected no y component for colinear bodies, got fy=%f", fy)
	}
}

func TestBarnesHutSelfContributesNoForce(t *testing.T) {
	bodies := []BarnesHutBody{{ID: "only", X: 0, Y: 0, Mass: 1}}
	tree := BuildBarnesHutTree(bodies, DefaultTheta)

	fx, fy := tree.Repulsion("only", 0, 0, 1, 1000)
	if fx != 0 || fy != 0 {
		t.Fatalf("expected zero self-force, got (%f, %f)", fx, fy)
	}
}

func TestBarnesHutEmptyTree(t *testing.T) {
	tree := BuildBarnesHutTree(nil, DefaultTheta)
	fx, fy := tree.Repulsion("anything", 0, 0, 1, 1000)
	if fx != 0 || fy != 0 {
		t.Fatalf("expected zero force from empty tree, got (%f, %f)", fx, fy)
	}
}

func TestBarnesHutNearSingularSkipped(t *testing.T) {
	bodies := []BarnesHutBody{
		{ID: "a", X: 0, Y: 0, Mass: 1},
		{ID: "b", X: 0.001, Y: 0, Mass: 1},
	}
	tree := BuildBarnesHutTree(bodies, DefaultTheta)
	fx, fy := tree.Repulsion("a", 0, 0, 1, 1000)
	if fx != 0 || fy != 0 {
		t.Fatalf("expected near-singular quadrant to contribute zero force, got (%f, %f)", fx, fy)
	}
}

// TestBarnesHutApproximatesDirectSum checks that, for a modest cloud of
// bodies, the Barnes-Hut approximation agrees in direction (and roughly
// in magnitude, at a tight theta) with brute-force pairwise summation.
func TestBarnesHutApproximatesDirectSum(t *testing.T) {
	bodies := []BarnesHutBody{
		{ID: "a", X: 0, Y: 0, Mass: 1},
		{ID: "b", X: 40, Y: 0, Mass: 1},
		{ID: "c", X: 0, Y: 40, Mass: 1},
		{ID: "d", X: -40, Y: -10, Mass: 1},
	}
	tree := BuildBarnesHutTree(bodies, 0.1) // tight theta ~= exact

	strength := 1000.0
	fx, fy := tree.Repulsion("a", bodies[0].X, bodies[0].Y, bodies[0].Mass, strength)

	var wantX, wantY float64
	for _, other := range bodies[1:] {
		dx := other.X - bodies[0].X
		dy := other.Y - bodies[0].Y
		dist := math.Hypot(dx, dy)
		force := strength * bodies[0].Mass * other.Mass / (dist * dist)
		wantX += -dx / dist * force
		wantY += -dy / dist * force
	}

	if math.Abs(fx-wantX) > 1e-6 || math.Abs(fy-wantY) > 1e-6 {
		t.Fatalf("tight-theta Barnes-Hut diverged from direct sum: got (%f,%f) want (%f,%f)", fx, fy, wantX, wantY)
	}
}

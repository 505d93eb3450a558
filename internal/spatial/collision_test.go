package spatial

import (
	"math"
	"math/rand"
	"testing"
)

func TestDetectCollisionsReportsOverlap(t *testing.T) {
	bodies := []Body{
		{ID: "n0", X: 0, Y: 0, Radius: 50},
		{ID: "n1", X: 60, Y: 0, Radius: 50},
	}
	overlaps := DetectCollisions(bodies, 20)
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}
	// radius(A)+radius(B)+min_spacing - dist(A,B) = 50+50+20-60 = 60
	if math.Abs(overlaps[0].Amount-60) > 1e-9 {
		t.Fatalf("expected overlap amount 60, got %f", overlaps[0].Amount)
	}
}

func TestDetectCollisionsNoOverlapWhenFarApart(t *testing.T) {
	bodies := []Body{
		{ID: "n0", X: 0, Y: 0, Radius: 10},
		{ID: "n1", X: 1000, Y: 0, Radius: 10},
	}
	if overlaps := DetectCollisions(bodies, 5); len(overlaps) != 0 {
		t.Fatalf("expected no overlaps, got %d", len(overlaps))
	}
}

func TestDetectCollisionsEachPairOnce(t *testing.T) {
	bodies := []Body{
		{ID: "a", X: 0, Y: 0, Radius: 10},
		{ID: "b", X: 5, Y: 0, Radius: 10},
		{ID: "c", X: 10, Y: 0, Radius: 10},
	}
	overlaps := DetectCollisions(bodies, 5)
	seen := map[string]bool{}
	for _, o := range overlaps {
		key := o.A + "|" + o.B
		altKey := o.B + "|" + o.A
		if seen[key] || seen[altKey] {
			t.Fatalf("pair %s/%s reported more than once", o.A, o.B)
		}
		seen[key] = true
	}
}

// TestResolveCollisionsStabilizes checks that two overlapping nodes
// are pushed apart by the default resolver until the minimum-spacing
// invariant holds.
func TestResolveCollisionsStabilizes(t *testing.T) {
	bodies := []Body{
		{ID: "n0", Radius: 50},
		{ID: "n1", Radius: 50},
	}
	positions := map[string][2]float64{
		"n0": {0, 0},
		"n1": {60, 0},
	}
	r := NewResolver(0.7)
	iterations, remaining := r.ResolveCollisions(bodies, positions, 20, 300, 1.0)
	if len(remaining) != 0 {
		t.Fatalf("expected collisions to resolve, %d remaining after %d iterations", len(remaining), iterations)
	}

	dist := math.Hypot(positions["n0"][0]-positions["n1"][0], positions["n0"][1]-positions["n1"][1])
	minDist := bodies[0].Radius + bodies[1].Radius + 20 // 120
	if dist < minDist-0.1 {
		t.Fatalf("expected dist >= %f, got %f", minDist-0.1, dist)
	}
}

func TestResolveCollisionsPreservesNodeCount(t *testing.T) {
	bodies := []Body{
		{ID: "a", Radius: 30},
		{ID: "b", Radius: 30},
		{ID: "c", Radius: 30},
	}
	positions := map[string][2]float64{
		"a": {0, 0},
		"b": {10, 0},
		"c": {20, 0},
	}
	r := NewResolver(0.7)
	r.ResolveCollisions(bodies, positions, 10, 200, 1.0)
	if len(positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(positions))
	}
}

func TestResolverDegenerateDistanceUsesJitter(t *testing.T) {
	r := &Resolver{Strength: 0.7, Rand: rand.New(rand.NewSource(42))}
	bodies := []Body{
		{ID: "a", X: 0, Y: 0, Radius: 10},
		{ID: "b", X: 0, Y: 0, Radius: 10},
	}
	forces := r.Forces(bodies, []Overlap{{A: "a", B: "b", Amount: 5}}, 1.0)
	fa, fb := forces["a"], forces["b"]
	if fa[0] == 0 && fa[1] == 0 {
		t.Fatalf("expected a non-zero jittered force for coincident bodies")
	}
	if math.Abs(fa[0]+fb[0]) > 1e-9 || math.Abs(fa[1]+fb[1]) > 1e-9 {
		t.Fatalf("expected equal and opposite forces, got %v and %v", fa, fb)
	}
}

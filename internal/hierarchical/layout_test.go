package hierarchical

import "testing"

func TestAssignLayersLinearChain(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}

	layers := Layers(nodes, edges)
	if layers["a"] != 0 || layers["b"] != 1 || layers["c"] != 2 {
		t.Fatalf("expected linear layering 0,1,2 got %v", layers)
	}
}

func TestAssignLayersIsolatedNodeIsLayerZero(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "lonely"}}
	edges := []Edge{}
	layers := Layers(nodes, edges)
	if layers["lonely"] != 0 {
		t.Fatalf("expected isolated node at layer 0, got %d", layers["lonely"])
	}
}

func TestAssignLayersLongestPathWins(t *testing.T) {
	// a->c, a->b->c: c must be at layer 2 (longest path), not 1.
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{
		{Source: "a", Target: "c"},
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
	}
	layers := Layers(nodes, edges)
	if layers["c"] != 2 {
		t.Fatalf("expected longest-path layer 2 for c, got %d", layers["c"])
	}
}

func TestAssignLayersHandlesCycle(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "a"}, // back-edge
	}
	layers := Layers(nodes, edges)
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := layers[id]; !ok {
			t.Fatalf("expected every node in a cycle to receive a layer, missing %s", id)
		}
	}
}

func TestLayoutSameLayerCoplanarityTB(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	edges := []Edge{
		{Source: "a", Target: "c"},
		{Source: "b", Target: "d"},
	}
	cfg := DefaultConfig()
	cfg.Direction = TB
	positions := Layout(nodes, edges, cfg)

	if positions["a"].Y != positions["b"].Y {
		t.Fatalf("expected nodes a,b at layer 0 to share y, got %v and %v", positions["a"], positions["b"])
	}
	if positions["c"].Y != positions["d"].Y {
		t.Fatalf("expected nodes c,d at layer 1 to share y, got %v and %v", positions["c"], positions["d"])
	}
	if positions["a"].Y == positions["c"].Y {
		t.Fatalf("expected different layers to have different y")
	}
}

func TestLayoutLRUsesXForLevelAxis(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	edges := []Edge{{Source: "a", Target: "b"}}
	cfg := DefaultConfig()
	cfg.Direction = LR
	positions := Layout(nodes, edges, cfg)

	if positions["a"].X == positions["b"].X {
		t.Fatalf("expected LR layout to separate nodes along x")
	}
	if positions["a"].X >= positions["b"].X {
		t.Fatalf("expected layer 0 node a to have smaller x than layer 1 node b in LR")
	}
}

func TestLayoutBTNegatesLevelAxis(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	edges := []Edge{{Source: "a", Target: "b"}}
	cfg := DefaultConfig()
	cfg.Direction = BT
	positions := Layout(nodes, edges, cfg)

	if positions["b"].Y >= positions["a"].Y {
		t.Fatalf("expected BT layout to place deeper layers at smaller y, got a=%v b=%v", positions["a"], positions["b"])
	}
}

func TestCrossingReductionOrdersByBarycenter(t *testing.T) {
	// Layer 0: x, y (in that input order). Layer 1: p connects to y, q connects to x.
	// Barycenter of p (neighbour y at pos 1) = 1; barycenter of q (neighbour x at pos 0) = 0.
	// So layer 1 should be ordered [q, p].
	nodes := []Node{{ID: "x"}, {ID: "y"}, {ID: "p"}, {ID: "q"}}
	edges := []Edge{
		{Source: "y", Target: "p"},
		{Source: "x", Target: "q"},
	}
	cfg := DefaultConfig()
	positions := Layout(nodes, edges, cfg)

	if positions["q"].X >= positions["p"].X {
		t.Fatalf("expected barycenter ordering to place q before p, got q=%v p=%v", positions["q"], positions["p"])
	}
}

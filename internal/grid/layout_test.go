package grid

import "testing"

func TestLayoutDefaultColumnsIsCeilSqrt(t *testing.T) {
	nodes := make([]Node, 10)
	for i := range nodes {
		nodes[i] = Node{ID: string(rune('a' + i))}
	}
	cfg := DefaultConfig()
	positions := Layout(nodes, cfg)

	maxCol := 0
	for _, p := range positions {
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	// ceil(sqrt(10)) = 4, so columns run 0..3.
	if maxCol != 3 {
		t.Fatalf("expected max column index 3 for ceil(sqrt(10))=4 columns, got %d", maxCol)
	}
}

func TestLayoutExplicitColumns(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	cfg := DefaultConfig()
	cfg.Columns = 2
	cfg.ColumnSpacing = 10
	cfg.RowSpacing = 20
	positions := Layout(nodes, cfg)

	if positions["a"].Col != 0 || positions["a"].Row != 0 {
		t.Fatalf("expected a at (0,0), got %+v", positions["a"])
	}
	if positions["b"].Col != 1 || positions["b"].Row != 0 {
		t.Fatalf("expected b at (1,0), got %+v", positions["b"])
	}
	if positions["c"].Col != 0 || positions["c"].Row != 1 {
		t.Fatalf("expected c at (0,1), got %+v", positions["c"])
	}
	if positions["e"].X != 0 || positions["e"].Y != 40 {
		t.Fatalf("expected e at exact grid multiple (0,40), got (%f,%f)", positions["e"].X, positions["e"].Y)
	}
}

func TestLayoutSortByTypeThenPriorityDescending(t *testing.T) {
	nodes := []Node{
		{ID: "b1", Type: "b", Priority: 1},
		{ID: "a2", Type: "a", Priority: 2},
		{ID: "a1", Type: "a", Priority: 1},
	}
	cfg := DefaultConfig()
	cfg.Columns = 1
	cfg.Sort = SortByType
	positions := Layout(nodes, cfg)

	if positions["a2"].Row != 0 || positions["a1"].Row != 1 || positions["b1"].Row != 2 {
		t.Fatalf("expected order a2,a1,b1, got rows a2=%d a1=%d b1=%d",
			positions["a2"].Row, positions["a1"].Row, positions["b1"].Row)
	}
}

func TestLayoutSortByPriorityDescending(t *testing.T) {
	nodes := []Node{
		{ID: "low", Priority: 1},
		{ID: "high", Priority: 10},
		{ID: "mid", Priority: 5},
	}
	cfg := DefaultConfig()
	cfg.Columns = 1
	cfg.Sort = SortByPriority
	positions := Layout(nodes, cfg)

	if positions["high"].Row != 0 || positions["mid"].Row != 1 || positions["low"].Row != 2 {
		t.Fatalf("expected order high,mid,low by descending priority, got %+v", positions)
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	positions := Layout(nil, DefaultConfig())
	if len(positions) != 0 {
		t.Fatalf("expected empty layout for no nodes")
	}
}

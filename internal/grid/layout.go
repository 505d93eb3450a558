// Package grid implements the engine's tessellated layout: optimal
// column calculation, optional pre-sort, and left-right top-bottom
// placement.
package grid

import (
	"math"
	"sort"
)

// Node is the layout's view of a graph node.
type Node struct {
	ID       string
	Type     string
	Priority int
}

// SortMode selects the optional pre-sort.
type SortMode string

const (
	// SortNone preserves input order.
	SortNone SortMode = ""
	// SortByType orders ascending by Type, then descending by Priority.
	SortByType SortMode = "type"
	// SortByPriority orders descending by Priority, then ascending by Type.
	SortByPriority SortMode = "priority"
)

// Config carries the grid placement knobs.
type Config struct {
	Columns       int // 0 means ceil(sqrt(n))
	ColumnSpacing float64
	RowSpacing    float64
	Sort          SortMode
}

// DefaultConfig returns the layout's default tunables.
func DefaultConfig() Config {
	return Config{
		Columns:       0,
		ColumnSpacing: 100,
		RowSpacing:    100,
		Sort:          SortNone,
	}
}

// Position is a node's final grid coordinate.
type Position struct {
	X, Y float64
	Col  int
	Row  int
}

// Layout places every node on a left-to-right, top-to-bottom grid.
func Layout(nodes []Node, cfg Config) map[string]Position {
	if len(nodes) == 0 {
		return map[string]Position{}
	}

	ordered := sortNodes(nodes, cfg.Sort)

	columns := cfg.Columns
	if columns <= 0 {
		columns = int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	}
	if columns < 1 {
		columns = 1
	}

	positions := make(map[string]Position, len(nodes))
	for i, n := range ordered {
		col := i % columns
		row := i / columns
		positions[n.ID] = Position{
			X:   float64(col) * cfg.ColumnSpacing,
			Y:   float64(row) * cfg.RowSpacing,
			Col: col,
			Row: row,
		}
	}
	return positions
}

func sortNodes(nodes []Node, mode SortMode) []Node {
	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)

	switch mode {
	case SortByType:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Type != ordered[j].Type {
				return ordered[i].Type < ordered[j].Type
			}
			return ordered[i].Priority > ordered[j].Priority
		})
	case SortByPriority:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Priority != ordered[j].Priority {
				return ordered[i].Priority > ordered[j].Priority
			}
			return ordered[i].Type < ordered[j].Type
		})
	}
	return ordered
}

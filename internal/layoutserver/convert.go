package layoutserver

import (
	"github.com/lattice-viz/layoutengine/internal/grid"
	"github.com/lattice-viz/layoutengine/internal/hierarchical"
)

func hierDirection(s string) hierarchical.Direction {
	switch hierarchical.Direction(s) {
	case hierarchical.TB, hierarchical.BT, hierarchical.LR, hierarchical.RL:
		return hierarchical.Direction(s)
	default:
		return hierarchical.TB
	}
}

func gridSortMode(s string) grid.SortMode {
	switch grid.SortMode(s) {
	case grid.SortByType, grid.SortByPriority:
		return grid.SortMode(s)
	default:
		return grid.SortNone
	}
}

// Package hierarchical implements the engine's layered layout:
// longest-path layer assignment, barycenter crossing reduction, and
// coordinate assignment across four orientations.
package hierarchical

import "sort"

// Direction selects which axis the layer index advances along.
type Direction string

const (
	TB Direction = "TB"
	BT Direction = "BT"
	LR Direction = "LR"
	RL Direction = "RL"
)

// Node is the layout's view of a graph node: an id and its box size
// (only the axis orthogonal to the level axis matters for spacing).
type Node struct {
	ID     string
	Width  float64
	Height float64
}

// Edge is a directed edge between two node ids.
type Edge struct {
	Source, Target string
}

// Config carries the coordinate-assignment knobs.
type Config struct {
	Direction        Direction
	LevelSeparation  float64
	NodeSeparation   float64
}

// DefaultConfig returns the layout's default tunables.
func DefaultConfig() Config {
	return Config{
		Direction:       TB,
		LevelSeparation: 100,
		NodeSeparation:  50,
	}
}

// Position is a node's final 2-D coordinate.
type Position struct {
	X, Y float64
}

// Layout assigns each input node a layer, an order within that layer,
// and a final position.
func Layout(nodes []Node, edges []Edge, cfg Config) map[string]Position {
	layers := assignLayers(nodes, edges)
	ordered := reduceCrossings(nodes, edges, layers)
	return assignCoordinates(nodes, ordered, layers, cfg)
}

// Layers exposes the raw per-node layer assignment, useful on its own
// for checking layer-monotonicity invariants without a full layout.
func Layers(nodes []Node, edges []Edge) map[string]int {
	return assignLayers(nodes, edges)
}

// assignLayers computes the longest-path layer of every node. Nodes
// with no incoming edges (including isolated nodes) start at layer 0;
// every other node's layer is one more than the maximum layer of its
// predecessors, following edges in a stable order that tolerates
// cycles by falling back to a minimum in-degree root.
func assignLayers(nodes []Node, edges []Edge) map[string]int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	inDegree := make(map[string]int, len(nodes))
	preds := make(map[string][]string, len(nodes))
	succs := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		inDegree[e.Target]++
		preds[e.Target] = append(preds[e.Target], e.Source)
		succs[e.Source] = append(succs[e.Source], e.Target)
	}

	layer := make(map[string]int, len(nodes))
	visiting := make(map[string]bool, len(nodes))
	done := make(map[string]bool, len(nodes))

	var visit func(id string) int
	visit = func(id string) int {
		if l, ok := layer[id]; ok {
			return l
		}
		if visiting[id] {
			// Back-edge into a cycle: treat this occurrence as a root.
			return -1
		}
		visiting[id] = true
		best := -1
		for _, p := range preds[id] {
			if pl := visit(p); pl > best {
				best = pl
			}
		}
		visiting[id] = false
		l := best + 1
		layer[id] = l
		done[id] = true
		return l
	}

	// Process roots (in-degree 0, including isolated nodes) first in
	// input order, then sweep remaining nodes lowest in-degree first
	// so cyclic subgraphs pick a minimum-in-degree entry point.
	order := make([]string, len(nodes))
	for i, n := range nodes {
		order[i] = n.ID
	}
	sort.SliceStable(order, func(i, j int) bool {
		return inDegree[order[i]] < inDegree[order[j]]
	})

	for _, id := range order {
		if !done[id] {
			visit(id)
		}
	}
	return layer
}

// reduceCrossings orders each layer by the barycenter of each node's
// neighbours already placed in the previous layer, preserving input
// order for nodes with no such neighbour.
func reduceCrossings(nodes []Node, edges []Edge, layers map[string]int) map[int][]string {
	byLayer := make(map[int][]string)
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		byLayer[layers[n.ID]] = append(byLayer[layers[n.ID]], n.ID)
	}

	predecessors := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		predecessors[e.Target] = append(predecessors[e.Target], e.Source)
	}

	var maxLayer int
	for l := range byLayer {
		if l > maxLayer {
			maxLayer = l
		}
	}

	posIndex := func(layerNodes []string) map[string]int {
		m := make(map[string]int, len(layerNodes))
		for i, id := range layerNodes {
			m[id] = i
		}
		return m
	}
	layerPos := map[int]map[string]int{0: posIndex(byLayer[0])}

	for l := 1; l <= maxLayer; l++ {
		ids := byLayer[l]
		hasBarycenter := make(map[string]bool, len(ids))
		barycenter := make(map[string]float64, len(ids))

		prevPos := layerPos[l-1]
		for _, id := range ids {
			var sum float64
			var count int
			for _, p := range predecessors[id] {
				if pos, ok := prevPos[p]; ok {
					sum += float64(pos)
					count++
				}
			}
			if count > 0 {
				barycenter[id] = sum / float64(count)
				hasBarycenter[id] = true
			}
		}

		sorted := make([]string, len(ids))
		copy(sorted, ids)
		originalIndex := make(map[string]int, len(ids))
		for i, id := range ids {
			originalIndex[id] = i
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			aHas, bHas := hasBarycenter[a], hasBarycenter[b]
			if aHas && !bHas {
				return true
			}
			if !aHas && bHas {
				return false
			}
			if aHas && bHas && barycenter[a] != barycenter[b] {
				return barycenter[a] < barycenter[b]
			}
			return originalIndex[a] < originalIndex[b]
		})
		byLayer[l] = sorted
		layerPos[l] = posIndex(sorted)
	}

	return byLayer
}

// assignCoordinates places every node given its layer and within-layer
// order, across the four supported orientations.
func assignCoordinates(nodes []Node, byLayer map[int][]string, layers map[string]int, cfg Config) map[string]Position {
	sizeOf := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		sizeOf[n.ID] = n
	}

	crossAxisSize := func(id string) float64 {
		n := sizeOf[id]
		switch cfg.Direction {
		case LR, RL:
			if n.Height > 0 {
				return n.Height
			}
		default:
			if n.Width > 0 {
				return n.Width
			}
		}
		return 0
	}

	positions := make(map[string]Position, len(nodes))

	var maxLayer int
	for l := range byLayer {
		if l > maxLayer {
			maxLayer = l
		}
	}

	for l := 0; l <= maxLayer; l++ {
		ids := byLayer[l]
		levelCoord := float64(l) * cfg.LevelSeparation
		if cfg.Direction == BT || cfg.Direction == RL {
			levelCoord = -levelCoord
		}

		// Centre the layer around 0: place nodes left-to-right first,
		// then shift by half the total span.
		offsets := make([]float64, len(ids))
		var cursor float64
		for i, id := range ids {
			if i == 0 {
				offsets[i] = 0
			} else {
				prev := crossAxisSize(ids[i-1])
				curr := crossAxisSize(id)
				cursor += (prev+curr)/2 + cfg.NodeSeparation
				offsets[i] = cursor
			}
		}
		var total float64
		if len(offsets) > 0 {
			total = offsets[len(offsets)-1]
		}
		shift := -total / 2

		for i, id := range ids {
			cross := offsets[i] + shift
			switch cfg.Direction {
			case LR, RL:
				positions[id] = Position{X: levelCoord, Y: cross}
			default:
				positions[id] = Position{X: cross, Y: levelCoord}
			}
		}
	}

	return positions
}

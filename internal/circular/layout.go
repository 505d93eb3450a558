// Package circular implements the engine's concentric layout:
// degree-based centre selection, BFS ring assignment, angular
// barycenter ordering within each ring, and final polar placement.
package circular

import (
	"math"
	"sort"
)

// Node is the layout's view of a graph node.
type Node struct {
	ID string
}

// Edge is treated as undirected for ring/degree computation.
type Edge struct {
	Source, Target string
}

// Config carries the radial placement knobs.
type Config struct {
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// DefaultConfig returns the layout's default tunables: a full circle
// starting at angle 0.
func DefaultConfig() Config {
	return Config{
		Radius:     100,
		StartAngle: 0,
		EndAngle:   2 * math.Pi,
	}
}

// Position is a node's final Cartesian coordinate.
type Position struct {
	X, Y float64
}

// Layout computes the ring, angular order, and final position of
// every node.
func Layout(nodes []Node, edges []Edge, cfg Config) map[string]Position {
	adjacency := buildAdjacency(nodes, edges)
	rings := assignRings(nodes, adjacency)
	ordered := orderRings(nodes, adjacency, rings)
	return placeRings(ordered, cfg)
}

// Rings exposes the raw ring assignment (hop count from the centre),
// useful on its own for checking ring-monotonicity invariants.
func Rings(nodes []Node, edges []Edge) map[string]int {
	return assignRings(nodes, buildAdjacency(nodes, edges))
}

func buildAdjacency(nodes []Node, edges []Edge) map[string][]string {
	index := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		index[n.ID] = true
	}
	adjacency := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if !index[e.Source] || !index[e.Target] {
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}
	return adjacency
}

// degreeSort sorts nodes by undirected degree descending, ties broken by
// input order.
func degreeSort(nodes []Node, adjacency map[string][]string) []string {
	order := make([]string, len(nodes))
	originalIndex := make(map[string]int, len(nodes))
	for i, n := range nodes {
		order[i] = n.ID
		originalIndex[n.ID] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := len(adjacency[order[i]]), len(adjacency[order[j]])
		if di != dj {
			return di > dj
		}
		return originalIndex[order[i]] < originalIndex[order[j]]
	})
	return order
}

// assignRings picks the highest-degree node as centre, BFS's the
// undirected graph for hop counts, and gives every still-unranked
// node (a disconnected component) a fresh ring one past the current
// maximum, repeating until all nodes are ranked.
func assignRings(nodes []Node, adjacency map[string][]string) map[string]int {
	if len(nodes) == 0 {
		return map[string]int{}
	}
	order := degreeSort(nodes, adjacency)

	ring := make(map[string]int, len(nodes))
	remaining := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		remaining[n.ID] = true
	}

	for len(remaining) > 0 {
		var root string
		for _, id := range order {
			if remaining[id] {
				root = id
				break
			}
		}

		maxRing := -1
		for _, r := range ring {
			if r > maxRing {
				maxRing = r
			}
		}
		base := maxRing + 1
		if len(ring) == 0 {
			base = 0
		}

		queue := []string{root}
		ring[root] = base
		delete(remaining, root)
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, nb := range adjacency[id] {
				if !remaining[nb] {
					continue
				}
				ring[nb] = ring[id] + 1
				delete(remaining, nb)
				queue = append(queue, nb)
			}
		}
	}
	return ring
}

// orderRings computes, per ring, the angular barycenter of each node
// over already-placed (lower-ring) neighbours and sorts by it. Nodes
// with no placed neighbour default to barycenter 0 and keep their
// relative input order.
func orderRings(nodes []Node, adjacency map[string][]string, rings map[string]int) map[int][]string {
	byRing := make(map[int][]string)
	originalIndex := make(map[string]int, len(nodes))
	for i, n := range nodes {
		originalIndex[n.ID] = i
		byRing[rings[n.ID]] = append(byRing[rings[n.ID]], n.ID)
	}

	var maxRing int
	for r := range byRing {
		if r > maxRing {
			maxRing = r
		}
	}

	placedAngle := make(map[string]float64)
	if len(byRing[0]) > 0 {
		placedAngle[byRing[0][0]] = 0
	}

	for k := 1; k <= maxRing; k++ {
		ids := byRing[k]
		barycenter := make(map[string]float64, len(ids))
		hasBarycenter := make(map[string]bool, len(ids))

		for _, id := range ids {
			var sumX, sumY float64
			var count int
			for _, nb := range adjacency[id] {
				if angle, ok := placedAngle[nb]; ok {
					sumX += math.Cos(angle)
					sumY += math.Sin(angle)
					count++
				}
			}
			if count > 0 {
				barycenter[id] = math.Atan2(sumY/float64(count), sumX/float64(count))
			}
			hasBarycenter[id] = true
		}

		sorted := make([]string, len(ids))
		copy(sorted, ids)
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
		byRing[k] = sorted

		// Record provisional angles for this ring so deeper rings can
		// compute barycenters against them; actual angle assignment
		// happens uniformly in placeRings, but the angular ordering
		// within a ring is already fixed by the sort above, so we
		// approximate each node's angle by its sorted position for the
		// purpose of feeding the next ring.
		for i, id := range sorted {
			if len(sorted) == 1 {
				placedAngle[id] = 0
				continue
			}
			placedAngle[id] = float64(i) / float64(len(sorted)) * 2 * math.Pi
		}
	}

	return byRing
}

// placeRings converts the ordered ring assignment into final polar
// coordinates.
func placeRings(byRing map[int][]string, cfg Config) map[string]Position {
	positions := make(map[string]Position)
	var maxRing int
	for r := range byRing {
		if r > maxRing {
			maxRing = r
		}
	}

	for k := 0; k <= maxRing; k++ {
		ids := byRing[k]
		m := len(ids)
		if m == 0 {
			continue
		}
		radius := float64(k) * cfg.Radius
		for i, id := range ids {
			angle := cfg.StartAngle + float64(i)*(cfg.EndAngle-cfg.StartAngle)/float64(m)
			positions[id] = Position{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			}
		}
	}
	return positions
}

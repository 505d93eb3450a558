package layoutengine

import (
	"github.com/lattice-viz/layoutengine/internal/circular"
	"github.com/lattice-viz/layoutengine/internal/hierarchical"
)

// LayerAssignments exposes the raw hierarchical layer of every node,
// independent of coordinate assignment.
func LayerAssignments(nodes []LayoutNode, edges []LayoutEdge) []LayerAssignment {
	hNodes := make([]hierarchical.Node, len(nodes))
	for i, n := range nodes {
		hNodes[i] = hierarchical.Node{ID: n.ID, Width: n.Width, Height: n.Height}
	}
	hEdges := make([]hierarchical.Edge, len(edges))
	for i, ed := range edges {
		hEdges[i] = hierarchical.Edge{Source: ed.Source, Target: ed.Target}
	}
	layers := hierarchical.Layers(hNodes, hEdges)

	out := make([]LayerAssignment, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, LayerAssignment{NodeID: n.ID, Layer: layers[n.ID]})
	}
	return out
}

// CircleAssignments exposes the raw circular-layout ring and its
// Euclidean distance from origin for every node.
func CircleAssignments(nodes []LayoutNode, edges []LayoutEdge, radius float64) []CircleAssignment {
	cNodes := make([]circular.Node, len(nodes))
	for i, n := range nodes {
		cNodes[i] = circular.Node{ID: n.ID}
	}
	cEdges := make([]circular.Edge, len(edges))
	for i, ed := range edges {
		cEdges[i] = circular.Edge{Source: ed.Source, Target: ed.Target}
	}
	rings := circular.Rings(cNodes, cEdges)

	out := make([]CircleAssignment, 0, len(nodes))
	for _, n := range nodes {
		ring := rings[n.ID]
		out = append(out, CircleAssignment{
			NodeID:   n.ID,
			Circle:   ring,
			Distance: float64(ring) * radius,
		})
	}
	return out
}

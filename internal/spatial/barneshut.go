package spatial

import "math"

// barnesHutPadding is added on all sides of a tree's bounding box so
// bodies exactly on the hull still subdivide cleanly.
const barnesHutPadding = 100.0

// DefaultTheta is the Barnes-Hut opening-angle threshold.
const DefaultTheta = 0.5

// nearSingularDistance is the distance below which a quadrant
// contributes zero force to avoid a near-singular 1/d^2 blow-up.
const nearSingularDistance = 0.01

// BarnesHutBody is one point mass fed into the tree.
type BarnesHutBody struct {
	ID   string
	X, Y float64
	Mass float64
}

// barnesHutQuadrant is a mutable four-child quadrant that accumulates
// total mass and center of mass as bodies are inserted.
type barnesHutQuadrant struct {
	bounds Rect

	totalMass float64
	comX, comY float64
	nodeCount int

	leafID string // valid only when isLeaf && nodeCount == 1
	isLeaf bool

	nw, ne, sw, se *barnesHutQuadrant
}

// BarnesHutTree is a quadtree augmented with center-of-mass and total
// mass per quadrant, supporting O(n log n) repulsion approximation.
type BarnesHutTree struct {
	root  *barnesHutQuadrant
	theta float64
}

// BuildBarnesHutTree constructs a tree from the given bodies. The root
// boundary is the bounding box of the bodies plus barnesHutPadding on
// all sides, made square to simplify quadrant math.
func BuildBarnesHutTree(bodies []BarnesHutBody, theta float64) *BarnesHutTree {
	if theta <= 0 {
		theta = DefaultTheta
	}
	if len(bodies) == 0 {
		return &BarnesHutTree{theta: theta}
	}

	minX, maxX := bodies[0].X, bodies[0].X
	minY, maxY := bodies[0].Y, bodies[0].Y
	for _, b := range bodies[1:] {
		minX = math.Min(minX, b.X)
		maxX = math.Max(maxX, b.X)
		minY = math.Min(minY, b.Y)
		maxY = math.Max(maxY, b.Y)
	}
	minX -= barnesHutPadding
	maxX += barnesHutPadding
	minY -= barnesHutPadding
	maxY += barnesHutPadding

	width := maxX - minX
	height := maxY - minY
	if width > height {
		diff := (width - height) / 2
		minY -= diff
		height = width
	} else if height > width {
		diff := (height - width) / 2
		minX -= diff
		width = height
	}
	if width <= 0 {
		width, height = 1, 1
	}

	root := newBarnesHutQuadrant(Rect{minX, minY, width, height})
	for _, b := range bodies {
		root.insert(b)
	}
	return &BarnesHutTree{root: root, theta: theta}
}

func newBarnesHutQuadrant(bounds Rect) *barnesHutQuadrant {
	return &barnesHutQuadrant{bounds: bounds, isLeaf: true}
}

func (q *barnesHutQuadrant) insert(b BarnesHutBody) {
	if q.isLeaf && q.nodeCount == 0 {
		q.leafID = b.ID
		q.comX, q.comY = b.X, b.Y
		q.totalMass = b.Mass
		q.nodeCount = 1
		return
	}

	if q.isLeaf {
		q.isLeaf = false
		oldID, oldX, oldY, oldMass := q.leafID, q.comX, q.comY, q.totalMass
		q.leafID = ""

		halfW := q.bounds.Width / 2
		halfH := q.bounds.Height / 2
		x, y := q.bounds.X, q.bounds.Y
		q.nw = newBarnesHutQuadrant(Rect{x, y, halfW, halfH})
		q.ne = newBarnesHutQuadrant(Rect{x + halfW, y, halfW, halfH})
		q.sw = newBarnesHutQuadrant(Rect{x, y + halfH, halfW, halfH})
		q.se = newBarnesHutQuadrant(Rect{x + halfW, y + halfH, halfW, halfH})

		q.insertIntoQuadrant(BarnesHutBody{ID: oldID, X: oldX, Y: oldY, Mass: oldMass})
		// keep the old body's totals; the new body is folded in below
		q.totalMass, q.comX, q.comY, q.nodeCount = oldMass, oldX, oldY, 1
	}

	totalMass := q.totalMass + b.Mass
	q.comX = (q.comX*q.totalMass + b.X*b.Mass) / totalMass
	q.comY = (q.comY*q.totalMass + b.Y*b.Mass) / totalMass
	q.totalMass = totalMass
	q.nodeCount++

	q.insertIntoQuadrant(b)
}

func (q *barnesHutQuadrant) insertIntoQuadrant(b BarnesHutBody) {
	midX := q.bounds.X + q.bounds.Width/2
	midY := q.bounds.Y + q.bounds.Height/2

	if b.X < midX {
		if b.Y < midY {
			q.nw.insert(b)
		} else {
			q.sw.insert(b)
		}
	} else {
		if b.Y < midY {
			q.ne.insert(b)
		} else {
			q.se.insert(b)
		}
	}
}

// Repulsion computes the repulsive force on the body identified by id,
// with mass bodyMass, at (px, py), using the Barnes-Hut opening-angle
// criterion: quadrants with s/d < theta are treated as one mass at
// their center of mass; closer quadrants are recursed into.
func (t *BarnesHutTree) Repulsion(id string, px, py, bodyMass, strength float64) (fx, fy float64) {
	if t.root == nil {
		return 0, 0
	}
	return t.root.repulsion(id, px, py, bodyMass, t.theta, strength)
}

func (q *barnesHutQuadrant) repulsion(id string, px, py, bodyMass, theta, strength float64) (fx, fy float64) {
	if q.nodeCount == 0 {
		return 0, 0
	}
	if q.isLeaf && q.leafID == id {
		return 0, 0
	}

	dx := q.comX - px
	dy := q.comY - py
	dist := math.Hypot(dx, dy)

	if dist < nearSingularDistance {
		return 0, 0
	}

	side := math.Max(q.bounds.Width, q.bounds.Height)
	if q.isLeaf || side/dist < theta {
		force := strength * bodyMass * q.totalMass / (dist * dist)
		return -dx / dist * force, -dy / dist * force
	}

	var sumX, sumY float64
	for _, child := range [...]*barnesHutQuadrant{q.nw, q.ne, q.sw, q.se} {
		cx, cy := child.repulsion(id, px, py, bodyMass, theta, strength)
		sumX += cx
		sumY += cy
	}
	return sumX, sumY
}

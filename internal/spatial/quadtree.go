// Package spatial implements the engine's point-index structures: a
// general-purpose Quadtree and a Barnes-Hut tree built on the same
// quadrant shape. Both are rebuilt from scratch whenever the caller
// needs a fresh index; neither is shared across goroutines.
package spatial

import "math"

// coincidentEpsilon is the distance below which two points are treated
// as the same location for the purposes of capacity overflow.
const coincidentEpsilon = 1e-3

// Point is a 2-D coordinate paired with an opaque payload returned by
// queries.
type Point struct {
	X, Y    float64
	Payload any
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies within the rectangle, inclusive
// of its edges.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X > r.X+r.Width || o.X+o.Width < r.X || o.Y > r.Y+r.Height || o.Y+o.Height < r.Y)
}

// Quadtree is a capacity-splitting 2-D point index. The zero value is
// not usable; construct with NewQuadtree.
type Quadtree struct {
	boundary Rect
	capacity int

	points   []Point
	divided  bool
	nw, ne, sw, se *Quadtree
}

// NewQuadtree creates an empty tree over the given boundary. capacity
// is the leaf-splitting threshold; values <= 0 fall back to the
// default of 4.
func NewQuadtree(boundary Rect, capacity int) *Quadtree {
	if capacity <= 0 {
		capacity = 4
	}
	return &Quadtree{boundary: boundary, capacity: capacity}
}

// Insert adds a point to the tree, splitting leaves that exceed
// capacity. It returns false iff the point lies outside the root
// boundary.
func (q *Quadtree) Insert(p Point) bool {
	if !q.boundary.Contains(p.X, p.Y) {
		return false
	}

	if q.divided {
		return q.insertIntoChild(p)
	}

	if len(q.points) < q.capacity || q.allCoincidentWith(p) {
		q.points = append(q.points, p)
		return true
	}

	q.subdivide()
	return q.insertIntoChild(p)
}

// allCoincidentWith reports whether every existing point in this leaf
// shares coordinates with p within coincidentEpsilon, in which case
// the leaf accepts beyond capacity rather than recursing forever on a
// degenerate cluster.
func (q *Quadtree) allCoincidentWith(p Point) bool {
	for _, existing := range q.points {
		if math.Abs(existing.X-p.X) > coincidentEpsilon || math.Abs(existing.Y-p.Y) > coincidentEpsilon {
			return false
		}
	}
	return true
}

// subdivide splits a leaf into four equal quadrants and redistributes
// its points. Points every child rejects (corner/boundary degeneracy)
// stay on this node.
func (q *Quadtree) subdivide() {
	halfW := q.boundary.Width / 2
	halfH := q.boundary.Height / 2
	x, y := q.boundary.X, q.boundary.Y

	q.nw = NewQuadtree(Rect{x, y, halfW, halfH}, q.capacity)
	q.ne = NewQuadtree(Rect{x + halfW, y, halfW, halfH}, q.capacity)
	q.sw = NewQuadtree(Rect{x, y + halfH, halfW, halfH}, q.capacity)
	q.se = NewQuadtree(Rect{x + halfW, y + halfH, halfW, halfH}, q.capacity)
	q.divided = true

	old := q.points
	q.points = nil
	for _, p := range old {
		if !q.insertIntoChild(p) {
			q.points = append(q.points, p)
		}
	}
}

func (q *Quadtree) insertIntoChild(p Point) bool {
	for _, child := range [...]*Quadtree{q.nw, q.ne, q.sw, q.se} {
		if child.Insert(p) {
			return true
		}
	}
	return false
}

// Query returns every point whose coordinates fall within rect.
func (q *Quadtree) Query(rect Rect) []Point {
	var out []Point
	q.query(rect, &out)
	return out
}

func (q *Quadtree) query(rect Rect, out *[]Point) {
	if !q.boundary.Intersects(rect) {
		return
	}
	for _, p := range q.points {
		if rect.Contains(p.X, p.Y) {
			*out = append(*out, p)
		}
	}
	if q.divided {
		q.nw.query(rect, out)
		q.ne.query(rect, out)
		q.sw.query(rect, out)
		q.se.query(rect, out)
	}
}

// QueryRadius returns every point within r of (cx, cy). It first
// bounds the search to the rectangle enclosing the circle, then
// filters by Euclidean distance.
func (q *Quadtree) QueryRadius(cx, cy, r float64) []Point {
	candidates := q.Query(Rect{cx - r, cy - r, 2 * r, 2 * r})
	rSq := r * r
	out := candidates[:0:0]
	for _, p := range candidates {
		dx, dy := p.X-cx, p.Y-cy
		if dx*dx+dy*dy <= rSq {
			out = append(out, p)
		}
	}
	return out
}

// Clear empties the tree, dropping all points and child quadrants.
func (q *Quadtree) Clear() {
	q.points = nil
	q.divided = false
	q.nw, q.ne, q.sw, q.se = nil, nil, nil, nil
}

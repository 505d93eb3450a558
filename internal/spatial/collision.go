package spatial

import (
	"math"
	"math/rand"
)

// degenerateDistance is the distance below which two coincident nodes
// need a random push direction to break the tie.
const degenerateDistance = 0.01

// Body is a circular body used by collision detection/resolution: an
// id, position, and effective radius (callers are expected to resolve
// the node's effective radius from its radius/width/height before
// building Bodies).
type Body struct {
	ID     string
	X, Y   float64
	Radius float64
}

// Overlap reports a detected collision between two bodies and its
// signed magnitude. Positive Amount means the pair is colliding.
type Overlap struct {
	A, B   string
	Amount float64
}

// DetectCollisions finds every unordered pair of bodies whose
// separation is less than radius(A)+radius(B)+minSpacing. Each
// pair is reported at most once. A Quadtree narrows the candidate set
// to QueryRadius(radius+minSpacing+largest radius) around each body
// before the exact distance check.
func DetectCollisions(bodies []Body, minSpacing float64) []Overlap {
	if len(bodies) < 2 {
		return nil
	}

	tree := buildBodyIndex(bodies)
	seen := make(map[[2]int]struct{})
	var overlaps []Overlap

	byID := make(map[string]int, len(bodies))
	for i, b := range bodies {
		byID[b.ID] = i
	}

	for i, a := range bodies {
		searchR := a.Radius + minSpacing + maxRadius(bodies)
		for _, p := range tree.QueryRadius(a.X, a.Y, searchR) {
			other := p.Payload.(Body)
			if other.ID == a.ID {
				continue
			}
			j := byID[other.ID]
			key := pairKey(i, j)
			if _, dup := seen[key]; dup {
				continue
			}

			dist := math.Hypot(a.X-other.X, a.Y-other.Y)
			minDist := a.Radius + other.Radius + minSpacing
			amount := minDist - dist
			if amount > 0 {
				seen[key] = struct{}{}
				overlaps = append(overlaps, Overlap{A: a.ID, B: other.ID, Amount: amount})
			}
		}
	}
	return overlaps
}

func pairKey(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

func maxRadius(bodies []Body) float64 {
	m := 0.0
	for _, b := range bodies {
		if b.Radius > m {
			m = b.Radius
		}
	}
	return m
}

func buildBodyIndex(bodies []Body) *Quadtree {
	minX, maxX := bodies[0].X, bodies[0].X
	minY, maxY := bodies[0].Y, bodies[0].Y
	for _, b := range bodies[1:] {
		minX = math.Min(minX, b.X)
		maxX = math.Max(maxX, b.X)
		minY = math.Min(minY, b.Y)
		maxY = math.Max(maxY, b.Y)
	}
	pad := maxRadius(bodies) + 1
	tree := NewQuadtree(Rect{minX - pad, minY - pad, (maxX - minX) + 2*pad, (maxY - minY) + 2*pad}, 4)
	for _, b := range bodies {
		tree.Insert(Point{X: b.X, Y: b.Y, Payload: b})
	}
	return tree
}

// Resolver computes and applies repulsion forces for colliding pairs.
// Rand is a seedable jitter source used to break the degenerate
// dist<0.01 tie; tests can swap in their own deterministic rand.Rand.
type Resolver struct {
	Strength float64
	Rand     *rand.Rand
}

// NewResolver builds a Resolver with the default strength (0.7) and a
// fixed-seed jitter source, so repeated runs over the same input are
// reproducible.
func NewResolver(strength float64) *Resolver {
	if strength == 0 {
		strength = 0.7
	}
	return &Resolver{Strength: strength, Rand: rand.New(rand.NewSource(1))}
}

// Forces computes a force vector per body id for the given overlaps,
// scaled by alpha. Equal-and-opposite forces are applied to each pair;
// degenerate (near-zero distance) pairs get a random unit push.
func (r *Resolver) Forces(bodies []Body, overlaps []Overlap, alpha float64) map[string][2]float64 {
	pos := make(map[string]Body, len(bodies))
	for _, b := range bodies {
		pos[b.ID] = b
	}

	forces := make(map[string][2]float64, len(bodies))
	for _, o := range overlaps {
		a, b := pos[o.A], pos[o.B]
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)

		var ux, uy float64
		if dist < degenerateDistance {
			angle := r.Rand.Float64() * 2 * math.Pi
			ux, uy = math.Cos(angle), math.Sin(angle)
		} else {
			ux, uy = dx/dist, dy/dist
		}

		mag := r.Strength * o.Amount * alpha
		fx, fy := forces[o.A], forces[o.B]
		forces[o.A] = [2]float64{fx[0] - ux*mag, fx[1] - uy*mag}
		forces[o.B] = [2]float64{fy[0] + ux*mag, fy[1] + uy*mag}
	}
	return forces
}

// ResolveCollisions iteratively applies collision forces until no
// overlaps remain or maxIters is exhausted. positions is mutated in
// place. It returns the number of iterations performed;
// the caller can compare that to maxIters to detect
// layouterr.CollisionUnresolved.
func (r *Resolver) ResolveCollisions(bodies []Body, positions map[string][2]float64, minSpacing float64, maxIters int, alpha float64) (iterations int, remaining []Overlap) {
	for iterations = 0; iterations < maxIters; iterations++ {
		current := withPositions(bodies, positions)
		overlaps := DetectCollisions(current, minSpacing)
		if len(overlaps) == 0 {
			return iterations, nil
		}

		forces := r.Forces(current, overlaps, alpha)
		for id, f := range forces {
			p := positions[id]
			positions[id] = [2]float64{p[0] + f[0], p[1] + f[1]}
		}
		alpha *= 0.9
		remaining = overlaps
	}
	return iterations, remaining
}

func withPositions(bodies []Body, positions map[string][2]float64) []Body {
	out := make([]Body, len(bodies))
	for i, b := range bodies {
		if p, ok := positions[b.ID]; ok {
			b.X, b.Y = p[0], p[1]
		}
		out[i] = b
	}
	return out
}

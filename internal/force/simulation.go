// Package force implements the engine's physical simulation loop:
// direct or Barnes-Hut repulsion, spring attraction, central gravity,
// collision forces, damping, and adaptive cooling.
package force

import (
	"math"

	"github.com/lattice-viz/layoutengine/internal/layouterr"
	"github.com/lattice-viz/layoutengine/internal/spatial"
)

// BarnesHutThreshold is the exact node count above which Barnes-Hut
// repulsion is used when enabled.
const BarnesHutThreshold = 50

// AlphaMin is the temperature below which the simulation stops
// ticking.
const AlphaMin = 0.001

// divergenceBound is the |position| magnitude past which a node is
// considered diverged and clamped.
const divergenceBound = 1e8

// defaultMovementThreshold gates the adaptive-cooling branches when
// Config.MovementThreshold is zero.
const defaultMovementThreshold = 0.5

// Node is the simulation's internal representation of one body.
type Node struct {
	ID         string
	X, Y       float64
	VX, VY     float64
	Mass       float64
	Radius     float64
	Pinned     bool
	PinX, PinY float64
}

// Edge is an attraction spring between two node ids.
type Edge struct {
	Source, Target string
	Weight         float64
}

// Config enumerates the simulation's tunables.
type Config struct {
	RepulsionStrength   float64
	AttractionStrength  float64
	IdealEdgeLength     float64
	CenterGravity       float64
	Damping             float64
	UseBarnesHut        bool
	BarnesHutTheta      float64
	MinSpacing          float64
	CollisionStrength   float64
	AdaptiveCooling     bool
	AlphaDecay          float64
	MovementThreshold   float64
}

// DefaultConfig returns the engine's default force-layout tunables.
func DefaultConfig() Config {
	return Config{
		RepulsionStrength:  200,
		AttractionStrength: 0.1,
		IdealEdgeLength:    100,
		CenterGravity:      0.02,
		Damping:            0.9,
		UseBarnesHut:       true,
		BarnesHutTheta:     spatial.DefaultTheta,
		MinSpacing:         20,
		CollisionStrength:  0.7,
		AdaptiveCooling:    true,
		AlphaDecay:         0.005,
		MovementThreshold:  defaultMovementThreshold,
	}
}

// DivergenceReporter receives a layouterr.SimulationDiverged report
// for every node clamped in a tick. It is optional; the engine facade
// wires it to the demo server's error reporter/metrics.
type DivergenceReporter func(*layouterr.Error)

// Simulation holds the keyed node collection, edge list, configuration,
// and the two cooling scalars.
type Simulation struct {
	nodes map[string]*Node
	order []string // stable iteration order
	edges []Edge
	cfg   Config

	Alpha      float64
	AlphaDecay float64

	OnDivergence DivergenceReporter
	resolver     *spatial.Resolver
}

// New builds a Simulation over the given nodes and edges.
func New(nodes []Node, edges []Edge, cfg Config) *Simulation {
	s := &Simulation{
		nodes:      make(map[string]*Node, len(nodes)),
		order:      make([]string, 0, len(nodes)),
		edges:      edges,
		cfg:        cfg,
		Alpha:      1.0,
		AlphaDecay: cfg.AlphaDecay,
		resolver:   spatial.NewResolver(cfg.CollisionStrength),
	}
	for i := range nodes {
		n := nodes[i]
		if n.Mass == 0 {
			n.Mass = 1
		}
		s.nodes[n.ID] = &n
		s.order = append(s.order, n.ID)
	}
	return s
}

// IsBarnesHutActive reports whether this tick would use Barnes-Hut
// repulsion: use_barnes_hut is enabled AND |nodes| > 50.
func (s *Simulation) IsBarnesHutActive() bool {
	return s.cfg.UseBarnesHut && len(s.order) > BarnesHutThreshold
}

// Positions returns a fresh snapshot of every node's current position.
func (s *Simulation) Positions() map[string][2]float64 {
	out := make(map[string][2]float64, len(s.order))
	for _, id := range s.order {
		n := s.nodes[id]
		out[id] = [2]float64{n.X, n.Y}
	}
	return out
}

// Tick advances the simulation by one step. It returns false once
// alpha has cooled below AlphaMin, in which case the simulation
// should be considered settled and is not mutated further.
func (s *Simulation) Tick() bool {
	if s.Alpha < AlphaMin {
		return false
	}

	var prevPositions map[string][2]float64
	if s.cfg.AdaptiveCooling {
		prevPositions = s.Positions()
	}

	dispX := make(map[string]float64, len(s.order))
	dispY := make(map[string]float64, len(s.order))

	s.applyRepulsion(dispX, dispY)
	s.applySprings(dispX, dispY)
	s.applyGravity(dispX, dispY)
	s.applyCollisions(dispX, dispY)
	s.integrate(dispX, dispY)
	s.cool(prevPositions)

	return true
}

func (s *Simulation) applyRepulsion(dispX, dispY map[string]float64) {
	if s.IsBarnesHutActive() {
		bodies := make([]spatial.BarnesHutBody, 0, len(s.order))
		for _, id := range s.order {
			n := s.nodes[id]
			bodies = append(bodies, spatial.BarnesHutBody{ID: id, X: n.X, Y: n.Y, Mass: n.Mass})
		}
		tree := spatial.BuildBarnesHutTree(bodies, s.cfg.BarnesHutTheta)
		for _, id := range s.order {
			n := s.nodes[id]
			fx, fy := tree.Repulsion(id, n.X, n.Y, n.Mass, s.cfg.RepulsionStrength)
			dispX[id] += fx
			dispY[id] += fy
		}
		return
	}

	for _, idA := range s.order {
		a := s.nodes[idA]
		for _, idB := range s.order {
			if idA == idB {
				continue
			}
			b := s.nodes[idB]
			dx, dy := a.X-b.X, a.Y-b.Y
			dist := math.Hypot(dx, dy)
			if dist < nearSingular {
				continue
			}
			force := s.cfg.RepulsionStrength * a.Mass * b.Mass / (dist * dist)
			dispX[idA] += dx / dist * force
			dispY[idA] += dy / dist * force
		}
	}
}

const nearSingular = 0.01

func (s *Simulation) applySprings(dispX, dispY map[string]float64) {
	for _, e := range s.edges {
		a, okA := s.nodes[e.Source]
		b, okB := s.nodes[e.Target]
		if !okA || !okB {
			continue
		}
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)
		if dist < nearSingular {
			continue
		}
		force := s.cfg.AttractionStrength * (dist - s.cfg.IdealEdgeLength)
		fx, fy := dx/dist*force, dy/dist*force
		dispX[e.Source] += fx
		dispY[e.Source] += fy
		dispX[e.Target] -= fx
		dispY[e.Target] -= fy
	}
}

func (s *Simulation) applyGravity(dispX, dispY map[string]float64) {
	for _, id := range s.order {
		n := s.nodes[id]
		dispX[id] -= s.cfg.CenterGravity * n.X
		dispY[id] -= s.cfg.CenterGravity * n.Y
	}
}

func (s *Simulation) applyCollisions(dispX, dispY map[string]float64) {
	bodies := make([]spatial.Body, 0, len(s.order))
	for _, id := range s.order {
		n := s.nodes[id]
		radius := n.Radius
		if radius == 0 {
			radius = s.cfg.MinSpacing / 2
		}
		bodies = append(bodies, spatial.Body{ID: id, X: n.X, Y: n.Y, Radius: radius})
	}
	overlaps := spatial.DetectCollisions(bodies, s.cfg.MinSpacing)
	if len(overlaps) == 0 {
		return
	}
	forces := s.resolver.Forces(bodies, overlaps, s.Alpha)
	for id, f := range forces {
		dispX[id] += f[0]
		dispY[id] += f[1]
	}
}

func (s *Simulation) integrate(dispX, dispY map[string]float64) {
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Pinned {
			n.X, n.Y = n.PinX, n.PinY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX = (n.VX + dispX[id]) * s.cfg.Damping
		n.VY = (n.VY + dispY[id]) * s.cfg.Damping
		n.X += n.VX
		n.Y += n.VY

		if mag := math.Hypot(n.X, n.Y); mag > divergenceBound {
			scale := divergenceBound / mag
			n.X *= scale
			n.Y *= scale
			if s.OnDivergence != nil {
				s.OnDivergence(layouterr.NewSimulationDiverged(id, mag))
			}
		}
	}
}

func (s *Simulation) cool(prevPositions map[string][2]float64) {
	if !s.cfg.AdaptiveCooling {
		s.Alpha *= 1 - s.AlphaDecay
		return
	}

	threshold := s.cfg.MovementThreshold
	if threshold == 0 {
		threshold = defaultMovementThreshold
	}

	var total float64
	for _, id := range s.order {
		n := s.nodes[id]
		prev := prevPositions[id]
		total += math.Hypot(n.X-prev[0], n.Y-prev[1])
	}
	avgMovement := total / float64(len(s.order))

	decay := s.AlphaDecay
	switch {
	case avgMovement < threshold:
		decay = 2 * s.AlphaDecay
	case avgMovement > 5*threshold:
		decay = 0.5 * s.AlphaDecay
	}
	s.Alpha *= 1 - decay
}

// OnDragStart pins the node and reheats alpha.
func (s *Simulation) OnDragStart(id string, x, y float64) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.Pinned = true
	n.PinX, n.PinY = x, y
	s.Alpha = math.Min(1, math.Max(s.Alpha, s.Alpha+0.3))
}

// OnDrag updates the pin position and reheats if the simulation has
// cooled below 0.3.
func (s *Simulation) OnDrag(id string, x, y float64) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.PinX, n.PinY = x, y
	if s.Alpha < 0.3 {
		s.Alpha = math.Min(1, s.Alpha+0.1)
	}
}

// OnDragEnd unpins the node and reheats by 0.5 so neighbours can
// rearrange.
func (s *Simulation) OnDragEnd(id string) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.Pinned = false
	s.Alpha = math.Min(1, s.Alpha+0.5)
}

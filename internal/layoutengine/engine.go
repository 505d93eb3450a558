package layoutengine

import (
	"math"
	"time"

	"github.com/lattice-viz/layoutengine/internal/animator"
	"github.com/lattice-viz/layoutengine/internal/circular"
	"github.com/lattice-viz/layoutengine/internal/force"
	"github.com/lattice-viz/layoutengine/internal/grid"
	"github.com/lattice-viz/layoutengine/internal/hierarchical"
	"github.com/lattice-viz/layoutengine/internal/layouterr"
	"github.com/lattice-viz/layoutengine/internal/logger"
	"github.com/lattice-viz/layoutengine/internal/spatial"
)

// progressInterval is the tick count between progress log lines for
// large graphs.
const progressInterval = 500

// progressLogThreshold only logs progress for graphs large enough that
// settling could plausibly take a human-noticeable amount of time.
const progressLogThreshold = 1000

// runUntilSettled ticks sim until it reports settled (alpha below
// force.AlphaMin) or maxTicks is exhausted, logging progress every
// progressInterval ticks for graphs of progressLogThreshold nodes or
// more.
func runUntilSettled(sim *force.Simulation, nodeCount, maxTicks int) {
	start := time.Now()
	logProgress := nodeCount >= progressLogThreshold
	ticks := 0
	for ticks = 0; ticks < maxTicks; ticks++ {
		if !sim.Tick() {
			break
		}
		if logProgress && ticks%progressInterval == 0 && ticks > 0 {
			logger.Info("force simulation settling", "ticks", ticks, "nodes", nodeCount, "alpha", sim.Alpha, "elapsed", time.Since(start))
		}
	}
	if logProgress {
		logger.Info("force simulation settled", "ticks", ticks, "nodes", nodeCount, "elapsed", time.Since(start))
	}
}

// Engine is the facade clients use: it owns an animator and dispatches
// to one of the four layout strategies. An Engine is not safe for
// concurrent use; callers are expected to use one engine per goroutine.
type Engine struct {
	cfg      EngineConfig
	anim     *animator.Animator
	selected map[string]struct{}
	current  Algorithm

	OnDivergence         func(*layouterr.Error)
	OnCollisionUnresolved func(*layouterr.Error)
}

// New builds an Engine with the given facade-level configuration.
func New(cfg EngineConfig) *Engine {
	if cfg.AnimationDurationMs <= 0 {
		cfg.AnimationDurationMs = animator.DefaultDuration
	}
	return &Engine{
		cfg:      cfg,
		anim:     animator.New(),
		selected: make(map[string]struct{}),
	}
}

// validate implements the InvalidGraph checks shared by every
// operation that consumes a graph.
func validate(nodes []LayoutNode, edges []LayoutEdge) *layouterr.Error {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := ids[n.ID]; dup {
			return layouterr.NewInvalidGraph("duplicate node id: " + n.ID)
		}
		ids[n.ID] = struct{}{}
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			return layouterr.NewInvalidGraph("non-finite coordinate on node " + n.ID)
		}
		if (n.Width != 0 && n.Width <= 0) || (n.Height != 0 && n.Height <= 0) {
			return layouterr.NewInvalidGraph("non-positive dimension on node " + n.ID)
		}
	}
	for _, e := range edges {
		if _, ok := ids[e.Source]; !ok {
			return layouterr.NewInvalidGraph("edge source not found: " + e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return layouterr.NewInvalidGraph("edge target not found: " + e.Target)
		}
	}
	return nil
}

// ComputeLayout dispatches to the configured algorithm and returns the
// resulting positions. The `distance` shorthand, if present, is
// applied to the algorithm-specific knobs before dispatch.
func (e *Engine) ComputeLayout(nodes []LayoutNode, edges []LayoutEdge, cfg LayoutConfig) (Positions, *layouterr.Error) {
	if err := validate(nodes, edges); err != nil {
		return nil, err
	}
	cfg = applyDistance(cfg)

	switch cfg.Algorithm {
	case Force:
		return e.computeForce(nodes, edges, cfg.Force), nil
	case Hierarchical:
		return e.computeHierarchical(nodes, edges, cfg.Hierarchical), nil
	case Circular:
		return e.computeCircular(nodes, edges, cfg.Circular), nil
	case Grid:
		return e.computeGrid(nodes, cfg.Grid), nil
	default:
		return nil, layouterr.NewUnknownAlgorithm(string(cfg.Algorithm))
	}
}

// radiusOf computes a node's effective collision radius: an explicit
// radius overrides max(width, height) / 2.
func radiusOf(n LayoutNode) float64 {
	if n.Radius > 0 {
		return n.Radius
	}
	w, h := n.Width, n.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	if w > h {
		return w / 2
	}
	return h / 2
}

// computeForce runs the force simulation to settlement (alpha below
// force.AlphaMin) and folds in the collision resolver.
func (e *Engine) computeForce(nodes []LayoutNode, edges []LayoutEdge, fc ForceConfig) Positions {
	simNodes := make([]force.Node, len(nodes))
	for i, n := range nodes {
		mass := n.Mass
		if mass == 0 {
			mass = 1
		}
		simNodes[i] = force.Node{ID: n.ID, X: n.X, Y: n.Y, Mass: mass, Radius: radiusOf(n)}
	}
	simEdges := make([]force.Edge, len(edges))
	for i, ed := range edges {
		simEdges[i] = force.Edge{Source: ed.Source, Target: ed.Target, Weight: ed.Weight}
	}

	cfg := force.Config{
		RepulsionStrength:  fc.RepulsionStrength,
		AttractionStrength: fc.AttractionStrength,
		IdealEdgeLength:    fc.IdealEdgeLength,
		CenterGravity:      fc.CenterGravity,
		Damping:            fc.Damping,
		UseBarnesHut:       fc.UseBarnesHut,
		BarnesHutTheta:     fc.BarnesHutTheta,
		MinSpacing:         fc.MinSpacing,
		CollisionStrength:  fc.CollisionStrength,
		AdaptiveCooling:    true,
		AlphaDecay:         0.005,
	}
	if cfg.BarnesHutTheta == 0 {
		cfg.BarnesHutTheta = spatial.DefaultTheta
	}

	sim := force.New(simNodes, simEdges, cfg)
	sim.OnDivergence = e.OnDivergence

	const maxTicks = 10000
	runUntilSettled(sim, len(nodes), maxTicks)

	bodies := make([]spatial.Body, len(nodes))
	positions := sim.Positions()
	posMap := make(map[string][2]float64, len(nodes))
	for i, n := range nodes {
		p := positions[n.ID]
		bodies[i] = spatial.Body{ID: n.ID, X: p[0], Y: p[1], Radius: radiusOf(n)}
		posMap[n.ID] = p
	}

	maxIters := fc.MaxCollisionIters
	if maxIters <= 0 {
		maxIters = 300
	}
	resolver := spatial.NewResolver(fc.CollisionStrength)
	iterations, remaining := resolver.ResolveCollisions(bodies, posMap, fc.MinSpacing, maxIters, 1.0)
	if len(remaining) > 0 && e.OnCollisionUnresolved != nil {
		e.OnCollisionUnresolved(layouterr.NewCollisionUnresolved(iterations, len(remaining)))
	}

	out := make(Positions, len(nodes))
	for _, n := range nodes {
		p := posMap[n.ID]
		out[n.ID] = Point{X: p[0], Y: p[1]}
	}
	return out
}

func (e *Engine) computeHierarchical(nodes []LayoutNode, edges []LayoutEdge, hc HierarchicalConfig) Positions {
	hNodes := make([]hierarchical.Node, len(nodes))
	for i, n := range nodes {
		hNodes[i] = hierarchical.Node{ID: n.ID, Width: n.Width, Height: n.Height}
	}
	hEdges := make([]hierarchical.Edge, len(edges))
	for i, ed := range edges {
		hEdges[i] = hierarchical.Edge{Source: ed.Source, Target: ed.Target}
	}
	cfg := hierarchical.Config{
		Direction:       hc.Direction,
		LevelSeparation: hc.LevelSeparation,
		NodeSeparation:  hc.NodeSeparation,
	}
	if cfg.Direction == "" {
		cfg.Direction = hierarchical.TB
	}
	positions := hierarchical.Layout(hNodes, hEdges, cfg)
	return toEnginePositions(positions)
}

func (e *Engine) computeCircular(nodes []LayoutNode, edges []LayoutEdge, cc CircularConfig) Positions {
	cNodes := make([]circular.Node, len(nodes))
	for i, n := range nodes {
		cNodes[i] = circular.Node{ID: n.ID}
	}
	cEdges := make([]circular.Edge, len(edges))
	for i, ed := range edges {
		cEdges[i] = circular.Edge{Source: ed.Source, Target: ed.Target}
	}
	cfg := circular.Config{Radius: cc.Radius, StartAngle: cc.StartAngle, EndAngle: cc.EndAngle}
	if cfg.Radius == 0 && cfg.StartAngle == 0 && cfg.EndAngle == 0 {
		cfg = circular.DefaultConfig()
	}
	positions := circular.Layout(cNodes, cEdges, cfg)
	out := make(Positions, len(positions))
	for id, p := range positions {
		out[id] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func (e *Engine) computeGrid(nodes []LayoutNode, gc GridConfig) Positions {
	gNodes := make([]grid.Node, len(nodes))
	for i, n := range nodes {
		gNodes[i] = grid.Node{ID: n.ID, Type: n.Type, Priority: n.Priority}
	}
	cfg := grid.Config{Columns: gc.Columns, ColumnSpacing: gc.ColumnSpacing, RowSpacing: gc.RowSpacing, Sort: gc.Sort}
	if cfg.ColumnSpacing == 0 {
		cfg.ColumnSpacing = grid.DefaultConfig().ColumnSpacing
	}
	if cfg.RowSpacing == 0 {
		cfg.RowSpacing = grid.DefaultConfig().RowSpacing
	}
	positions := grid.Layout(gNodes, cfg)
	out := make(Positions, len(positions))
	for id, p := range positions {
		out[id] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func toEnginePositions(in map[string]hierarchical.Position) Positions {
	out := make(Positions, len(in))
	for id, p := range in {
		out[id] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// TransitionTo computes target positions for cfg and animates from
// fromPositions to them, cancelling any animation already in flight.
// nowMs is the animation's start time, supplied by the caller's clock.
func (e *Engine) TransitionTo(nodes []LayoutNode, edges []LayoutEdge, fromPositions Positions, cfg LayoutConfig, nowMs float64, onUpdate func(Positions), onComplete func()) (*layouterr.Error) {
	target, err := e.ComputeLayout(nodes, edges, cfg)
	if err != nil {
		return err
	}

	from := make(map[string]animator.Point, len(fromPositions))
	for id, p := range fromPositions {
		from[id] = animator.Point{X: p.X, Y: p.Y}
	}
	to := make(map[string]animator.Point, len(target))
	for id, p := range target {
		to[id] = animator.Point{X: p.X, Y: p.Y}
	}

	firstFrame := true
	e.anim.Animate(from, to, animator.EaseInOutCubic, float64(e.cfg.AnimationDurationMs), nowMs,
		func(current map[string]animator.Point) {
			if firstFrame {
				e.current = cfg.Algorithm
				firstFrame = false
			}
			if onUpdate != nil {
				out := make(Positions, len(current))
				for id, p := range current {
					out[id] = Point{X: p.X, Y: p.Y}
				}
				onUpdate(out)
			}
		},
		onComplete,
	)
	return nil
}

// Tick advances any in-flight transition animation to nowMs. Callers
// drive this from their own display refresh clock.
func (e *Engine) Tick(nowMs float64) {
	e.anim.Tick(nowMs)
}

// StopAnimation cancels the in-flight transition, if any, without
// firing its on_complete.
func (e *Engine) StopAnimation() {
	e.anim.Stop()
}

// IsAnimating reports whether a transition is currently in flight.
func (e *Engine) IsAnimating() bool {
	return e.anim.IsAnimating()
}

// CurrentAlgorithm reports the algorithm of the most recently started
// transition's first frame.
func (e *Engine) CurrentAlgorithm() Algorithm {
	return e.current
}

// AnimationDuration returns the configured transition duration.
func (e *Engine) AnimationDuration() int {
	return e.cfg.AnimationDurationMs
}

// SetAnimationDuration updates the duration used by future transitions.
func (e *Engine) SetAnimationDuration(ms int) {
	if ms <= 0 {
		ms = animator.DefaultDuration
	}
	e.cfg.AnimationDurationMs = ms
}

// SetSelected replaces the engine's opaque selection set. The engine
// never reads this set for layout purposes; it is only preserved
// across transitions for the caller.
func (e *Engine) SetSelected(ids []string) {
	e.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		e.selected[id] = struct{}{}
	}
}

// GetSelected returns the currently held selection set.
func (e *Engine) GetSelected() []string {
	out := make([]string, 0, len(e.selected))
	for id := range e.selected {
		out = append(out, id)
	}
	return out
}

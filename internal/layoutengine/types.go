// Package layoutengine is the public facade over the engine's four
// layout strategies (force, hierarchical, circular, grid) and the
// animator that transitions between them.
package layoutengine

import (
	"github.com/lattice-viz/layoutengine/internal/animator"
	"github.com/lattice-viz/layoutengine/internal/circular"
	"github.com/lattice-viz/layoutengine/internal/force"
	"github.com/lattice-viz/layoutengine/internal/grid"
	"github.com/lattice-viz/layoutengine/internal/hierarchical"
)

// Algorithm tags one of the four supported layout strategies.
type Algorithm string

const (
	Force        Algorithm = "force"
	Hierarchical Algorithm = "hierarchical"
	Circular     Algorithm = "circular"
	Grid         Algorithm = "grid"
)

// LayoutNode is the caller-facing node shape.
type LayoutNode struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	Radius   float64
	Mass     float64
	Type     string
	Priority int
}

// LayoutEdge is the caller-facing edge shape.
type LayoutEdge struct {
	Source, Target string
	Weight         float64
}

// ForceConfig exposes the force-simulation knobs.
type ForceConfig struct {
	RepulsionStrength  float64
	AttractionStrength float64
	IdealEdgeLength    float64
	CenterGravity      float64
	Damping            float64
	UseBarnesHut       bool
	BarnesHutTheta     float64
	MinSpacing         float64
	CollisionStrength  float64
	MaxCollisionIters  int
}

// HierarchicalConfig exposes the coordinate-assignment knobs.
type HierarchicalConfig struct {
	Direction       hierarchical.Direction
	LevelSeparation float64
	NodeSeparation  float64
}

// CircularConfig exposes the radial placement knobs.
type CircularConfig struct {
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// GridConfig exposes the tessellation knobs.
type GridConfig struct {
	Columns       int
	ColumnSpacing float64
	RowSpacing    float64
	Sort          grid.SortMode
}

// LayoutConfig selects an algorithm and its per-algorithm knobs, plus
// the optional `distance` shorthand.
type LayoutConfig struct {
	Algorithm    Algorithm
	Distance     *int // 50..500, optional
	Force        ForceConfig
	Hierarchical HierarchicalConfig
	Circular     CircularConfig
	Grid         GridConfig
}

// EngineConfig configures the facade itself, independent of the
// chosen layout algorithm.
type EngineConfig struct {
	AnimationDurationMs int
	PreserveSelection   bool
}

// DefaultEngineConfig returns the facade's default settings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		AnimationDurationMs: animator.DefaultDuration,
		PreserveSelection:   true,
	}
}

// DefaultLayoutConfig returns a force-layout configuration with every
// algorithm's defaults populated, so callers can switch Algorithm
// without re-filling every sub-config.
func DefaultLayoutConfig() LayoutConfig {
	fc := force.DefaultConfig()
	hc := hierarchical.DefaultConfig()
	cc := circular.DefaultConfig()
	gc := grid.DefaultConfig()
	return LayoutConfig{
		Algorithm: Force,
		Force: ForceConfig{
			RepulsionStrength:  fc.RepulsionStrength,
			AttractionStrength: fc.AttractionStrength,
			IdealEdgeLength:    fc.IdealEdgeLength,
			CenterGravity:      fc.CenterGravity,
			Damping:            fc.Damping,
			UseBarnesHut:       fc.UseBarnesHut,
			BarnesHutTheta:     fc.BarnesHutTheta,
			MinSpacing:         fc.MinSpacing,
			CollisionStrength:  fc.CollisionStrength,
			MaxCollisionIters:  300,
		},
		Hierarchical: HierarchicalConfig{
			Direction:       hc.Direction,
			LevelSeparation: hc.LevelSeparation,
			NodeSeparation:  hc.NodeSeparation,
		},
		Circular: CircularConfig{
			Radius:     cc.Radius,
			StartAngle: cc.StartAngle,
			EndAngle:   cc.EndAngle,
		},
		Grid: GridConfig{
			Columns:       gc.Columns,
			ColumnSpacing: gc.ColumnSpacing,
			RowSpacing:    gc.RowSpacing,
			Sort:          gc.Sort,
		},
	}
}

// Point is a 2-D position.
type Point struct {
	X, Y float64
}

// Positions is one position per node id.
type Positions map[string]Point

// LayerAssignment exposes a node's hierarchical-layout layer for
// tests and diagnostics.
type LayerAssignment struct {
	NodeID string
	Layer  int
}

// CircleAssignment exposes a node's circular-layout ring and distance
// from origin for tests and diagnostics.
type CircleAssignment struct {
	NodeID   string
	Circle   int
	Distance float64
}

// applyDistance maps the optional `distance` shorthand onto the
// algorithm-specific knobs it governs, returning a copy of cfg with
// those knobs overridden.
func applyDistance(cfg LayoutConfig) LayoutConfig {
	if cfg.Distance == nil {
		return cfg
	}
	d := float64(*cfg.Distance)
	switch cfg.Algorithm {
	case Force:
		cfg.Force.IdealEdgeLength = d
		cfg.Force.MinSpacing = 0.2 * d
		cfg.Force.RepulsionStrength = 10 * d
	case Hierarchical:
		cfg.Hierarchical.LevelSeparation = d
		cfg.Hierarchical.NodeSeparation = 0.5 * d
	case Circular:
		cfg.Circular.Radius = 2 * d
	case Grid:
		cfg.Grid.RowSpacing = d
		cfg.Grid.ColumnSpacing = d
	}
	return cfg
}

// Package layoutserver is the demonstration HTTP/WebSocket surface
// around internal/layoutengine. It is ambient wiring, not part of the
// engine's own contract — the engine never imports net/http, and
// layoutserver never implements layout math of its own.
package layoutserver

import "github.com/lattice-viz/layoutengine/internal/layoutengine"

// NodeDTO is the wire shape of layoutengine.LayoutNode.
type NodeDTO struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Mass     float64 `json:"mass,omitempty"`
	Type     string  `json:"type,omitempty"`
	Priority int     `json:"priority,omitempty"`
}

// EdgeDTO is the wire shape of layoutengine.LayoutEdge.
type EdgeDTO struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// ConfigDTO is the wire shape of layoutengine.LayoutConfig. Only the
// sub-config matching Algorithm needs to be populated; omitted
// numeric fields fall back to DefaultLayoutConfig's values.
type ConfigDTO struct {
	Algorithm    string            `json:"algorithm"`
	Distance     *int              `json:"distance,omitempty"`
	Force        *ForceConfigDTO   `json:"force,omitempty"`
	Hierarchical *HierConfigDTO    `json:"hierarchical,omitempty"`
	Circular     *CircularConfigDTO `json:"circular,omitempty"`
	Grid         *GridConfigDTO    `json:"grid,omitempty"`
}

type ForceConfigDTO struct {
	RepulsionStrength  *float64 `json:"repulsion_strength,omitempty"`
	AttractionStrength *float64 `json:"attraction_strength,omitempty"`
	IdealEdgeLength    *float64 `json:"ideal_edge_length,omitempty"`
	CenterGravity      *float64 `json:"center_gravity,omitempty"`
	Damping            *float64 `json:"damping,omitempty"`
	UseBarnesHut       *bool    `json:"use_barnes_hut,omitempty"`
	BarnesHutTheta     *float64 `json:"barnes_hut_theta,omitempty"`
	MinSpacing         *float64 `json:"min_spacing,omitempty"`
	CollisionStrength  *float64 `json:"collision_strength,omitempty"`
	MaxCollisionIters  *int     `json:"max_collision_iters,omitempty"`
}

type HierConfigDTO struct {
	Direction       string   `json:"direction,omitempty"`
	LevelSeparation *float64 `json:"level_separation,omitempty"`
	NodeSeparation  *float64 `json:"node_separation,omitempty"`
}

type CircularConfigDTO struct {
	Radius     *float64 `json:"radius,omitempty"`
	StartAngle *float64 `json:"start_angle,omitempty"`
	EndAngle   *float64 `json:"end_angle,omitempty"`
}

type GridConfigDTO struct {
	Columns       *int     `json:"columns,omitempty"`
	ColumnSpacing *float64 `json:"column_spacing,omitempty"`
	RowSpacing    *float64 `json:"row_spacing,omitempty"`
	Sort          string   `json:"sort,omitempty"`
}

// PositionsDTO is the wire shape of layoutengine.Positions.
type PositionsDTO map[string]PointDTO

type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutRequest is the body of POST /layout.
type LayoutRequest struct {
	Nodes  []NodeDTO `json:"nodes"`
	Edges  []EdgeDTO `json:"edges"`
	Config ConfigDTO `json:"config"`
}

// LayoutResponse is the body of a successful POST /layout response.
// Warnings carries any non-fatal layouterr reports (SimulationDiverged,
// CollisionUnresolved) raised while computing the layout.
type LayoutResponse struct {
	Positions PositionsDTO `json:"positions"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// TransitionRequest is the body of POST /transition.
type TransitionRequest struct {
	Nodes         []NodeDTO    `json:"nodes"`
	Edges         []EdgeDTO    `json:"edges"`
	Config        ConfigDTO    `json:"config"`
	FromPositions PositionsDTO `json:"from_positions"`
}

// TransitionResponse hands the caller a token to open the animation
// WebSocket with, plus the target snapshot so a caller that doesn't
// need to watch the animation can skip straight to the end state.
type TransitionResponse struct {
	StreamURL string       `json:"stream_url"`
	Token     string       `json:"token"`
	Target    PositionsDTO `json:"target"`
}

func toEngineNodes(in []NodeDTO) []layoutengine.LayoutNode {
	out := make([]layoutengine.LayoutNode, len(in))
	for i, n := range in {
		out[i] = layoutengine.LayoutNode{
			ID: n.ID, X: n.X, Y: n.Y,
			Width: n.Width, Height: n.Height, Radius: n.Radius, Mass: n.Mass,
			Type: n.Type, Priority: n.Priority,
		}
	}
	return out
}

func toEngineEdges(in []EdgeDTO) []layoutengine.LayoutEdge {
	out := make([]layoutengine.LayoutEdge, len(in))
	for i, e := range in {
		out[i] = layoutengine.LayoutEdge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return out
}

func toEngineConfig(in ConfigDTO) layoutengine.LayoutConfig {
	cfg := layoutengine.DefaultLayoutConfig()
	cfg.Algorithm = layoutengine.Algorithm(in.Algorithm)
	cfg.Distance = in.Distance

	if f := in.Force; f != nil {
		if f.RepulsionStrength != nil {
			cfg.Force.RepulsionStrength = *f.RepulsionStrength
		}
		if f.AttractionStrength != nil {
			cfg.Force.AttractionStrength = *f.AttractionStrength
		}
		if f.IdealEdgeLength != nil {
			cfg.Force.IdealEdgeLength = *f.IdealEdgeLength
		}
		if f.CenterGravity != nil {
			cfg.Force.CenterGravity = *f.CenterGravity
		}
		if f.Damping != nil {
			cfg.Force.Damping = *f.Damping
		}
		if f.UseBarnesHut != nil {
			cfg.Force.UseBarnesHut = *f.UseBarnesHut
		}
		if f.BarnesHutTheta != nil {
			cfg.Force.BarnesHutTheta = *f.BarnesHutTheta
		}
		if f.MinSpacing != nil {
			cfg.Force.MinSpacing = *f.MinSpacing
		}
		if f.CollisionStrength != nil {
			cfg.Force.CollisionStrength = *f.CollisionStrength
		}
		if f.MaxCollisionIters != nil {
			cfg.Force.MaxCollisionIters = *f.MaxCollisionIters
		}
	}
	if h := in.Hierarchical; h != nil {
		if h.Direction != "" {
			cfg.Hierarchical.Direction = hierDirection(h.Direction)
		}
		if h.LevelSeparation != nil {
			cfg.Hierarchical.LevelSeparation = *h.LevelSeparation
		}
		if h.NodeSeparation != nil {
			cfg.Hierarchical.NodeSeparation = *h.NodeSeparation
		}
	}
	if c := in.Circular; c != nil {
		if c.Radius != nil {
			cfg.Circular.Radius = *c.Radius
		}
		if c.StartAngle != nil {
			cfg.Circular.StartAngle = *c.StartAngle
		}
		if c.EndAngle != nil {
			cfg.Circular.EndAngle = *c.EndAngle
		}
	}
	if g := in.Grid; g != nil {
		if g.Columns != nil {
			cfg.Grid.Columns = *g.Columns
		}
		if g.ColumnSpacing != nil {
			cfg.Grid.ColumnSpacing = *g.ColumnSpacing
		}
		if g.RowSpacing != nil {
			cfg.Grid.RowSpacing = *g.RowSpacing
		}
		if g.Sort != "" {
			cfg.Grid.Sort = gridSortMode(g.Sort)
		}
	}
	return cfg
}

func toPositionsDTO(in layoutengine.Positions) PositionsDTO {
	out := make(PositionsDTO, len(in))
	for id, p := range in {
		out[id] = PointDTO{X: p.X, Y: p.Y}
	}
	return out
}

func toEnginePositions(in PositionsDTO) layoutengine.Positions {
	out := make(layoutengine.Positions, len(in))
	for id, p := range in {
		out[id] = layoutengine.Point{X: p.X, Y: p.Y}
	}
	return out
}

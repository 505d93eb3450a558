package layoutserver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// fingerprint computes a stable hash of a layout request (node ids,
// dimensions, edge endpoints, and the resolved config) so that an
// unchanged POST /layout body can be served from cache instead of
// recomputed. It never participates in the layout algorithms
// themselves; it exists only at this HTTP-boundary cache.
func fingerprint(req LayoutRequest) string {
	nodes := make([]NodeDTO, len(req.Nodes))
	copy(nodes, req.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]EdgeDTO, len(req.Edges))
	copy(edges, req.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	h := sha256.New()
	for _, n := range nodes {
		fmt.Fprintf(h, "n:%s:%g:%g:%g:%g:%s:%d|", n.ID, n.Width, n.Height, n.Radius, n.Mass, n.Type, n.Priority)
	}
	for _, e := range edges {
		fmt.Fprintf(h, "e:%s>%s:%g|", e.Source, e.Target, e.Weight)
	}
	cfg, _ := json.Marshal(toEngineConfig(req.Config))
	fmt.Fprintf(h, "cfg:%s", cfg)
	return hex.EncodeToString(h.Sum(nil))
}

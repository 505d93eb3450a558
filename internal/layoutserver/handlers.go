package layoutserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/lattice-viz/layoutengine/internal/apierr"
	"github.com/lattice-viz/layoutengine/internal/cache"
	"github.com/lattice-viz/layoutengine/internal/config"
	"github.com/lattice-viz/layoutengine/internal/errorreporting"
	"github.com/lattice-viz/layoutengine/internal/layouterr"
	"github.com/lattice-viz/layoutengine/internal/layoutengine"
	"github.com/lattice-viz/layoutengine/internal/logger"
	"github.com/lattice-viz/layoutengine/internal/metrics"
	"github.com/lattice-viz/layoutengine/internal/tracing"
)

// Server holds the dependencies the demo HTTP/WebSocket surface shares
// across requests: the fingerprint cache, and the WebSocket hub that
// streams transition animations. It has no exported fields and is
// wired together by NewServer.
type Server struct {
	cfg   *config.Config
	cache *cache.LRUCache
	jobs  *jobStore
	hub   *Hub
}

// NewServer builds a Server from configuration, starting its
// WebSocket hub in the background with a long-lived context.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	c, err := cache.NewLRU(64, cfg.CacheMaxItems, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	jobs := newJobStore()
	hub := NewHub(jobs)
	go hub.Run(ctx)

	return &Server{cfg: cfg, cache: c, jobs: jobs, hub: hub}, nil
}

// Close releases the cache's resources. The hub's goroutine exits
// when the context passed to NewServer is cancelled.
func (s *Server) Close() {
	s.cache.Close()
}

// Health returns a simple JSON payload to indicate the API is alive.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Layout handles POST /layout: compute a layout for the given graph
// and config, serving from the fingerprint cache when available.
func (s *Server) Layout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracing.StartSpan(r.Context(), "layoutserver.ComputeLayout")
	defer span.End()

	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.ValidationInvalidJSON())
		return
	}

	key := fingerprint(req)
	if cached, ok := s.cache.Get(key); ok {
		metrics.LayoutCacheHits.Inc()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.Write(cached)
		return
	}
	metrics.LayoutCacheMisses.Inc()

	cfg := toEngineConfig(req.Config)
	nodes := toEngineNodes(req.Nodes)
	edges := toEngineEdges(req.Edges)

	engine := layoutengine.New(layoutengine.DefaultEngineConfig())
	warnings := attachWarningReporters(engine, ctx, string(cfg.Algorithm))

	positions, lerr := engine.ComputeLayout(nodes, edges, cfg)
	algo := string(cfg.Algorithm)
	elapsed := time.Since(start)
	metrics.ComputeLayoutDuration.WithLabelValues(algo).Observe(elapsed.Seconds())

	if lerr != nil {
		metrics.ComputeLayoutTotal.WithLabelValues(algo, strings.ToLower(string(lerr.Code))).Inc()
		logger.WarnContext(ctx, "compute_layout rejected invalid graph", "algorithm", algo, "error", lerr.Error())
		apierr.WriteErrorWithContext(w, r, apierr.FromLayoutError(lerr))
		return
	}
	metrics.ComputeLayoutTotal.WithLabelValues(algo, "ok").Inc()
	logger.InfoContext(ctx, "compute_layout succeeded", "algorithm", algo, "nodes", len(nodes), "duration", elapsed)

	resp := LayoutResponse{Positions: toPositionsDTO(positions), Warnings: *warnings}
	body, err := json.Marshal(resp)
	if err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.SystemInternal("failed to encode layout response"))
		return
	}
	s.cache.Set(key, body, time.Duration(s.cfg.CacheTTLSeconds)*time.Second)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.Write(body)
}

// Transition handles POST /transition: compute the target layout and
// register a transition job a caller can watch frame-by-frame over
// GET /layout/stream.
func (s *Server) Transition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.StartSpan(r.Context(), "layoutserver.TransitionTo")
	defer span.End()

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.ValidationInvalidJSON())
		return
	}

	cfg := toEngineConfig(req.Config)
	nodes := toEngineNodes(req.Nodes)
	edges := toEngineEdges(req.Edges)

	engine := layoutengine.New(layoutengine.DefaultEngineConfig())
	engine.SetAnimationDuration(s.cfg.AnimationDurationMs)
	attachWarningReporters(engine, ctx, string(cfg.Algorithm))

	target, lerr := engine.ComputeLayout(nodes, edges, cfg)
	if lerr != nil {
		logger.WarnContext(ctx, "transition rejected invalid graph", "error", lerr.Error())
		apierr.WriteErrorWithContext(w, r, apierr.FromLayoutError(lerr))
		return
	}

	token := uuid.NewString()
	s.jobs.put(token, &transitionJob{
		from:       toEnginePositions(req.FromPositions),
		to:         target,
		durationMs: float64(s.cfg.AnimationDurationMs),
	})
	metrics.AnimationsStarted.Inc()
	logger.InfoContext(ctx, "transition registered", "token", token, "algorithm", cfg.Algorithm)

	resp := TransitionResponse{
		StreamURL: "/layout/stream?token=" + token,
		Token:     token,
		Target:    toPositionsDTO(target),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// attachWarningReporters wires the engine's non-fatal reporter hooks
// (SimulationDiverged, CollisionUnresolved) to Prometheus and the log;
// SimulationDiverged is also sent to Sentry when it is enabled,
// mirroring middleware.RecoverWithSentry's panic-reporting pattern.
// It returns the accumulated warning strings.
func attachWarningReporters(engine *layoutengine.Engine, ctx context.Context, algorithm string) *[]string {
	warnings := make([]string, 0)
	engine.OnDivergence = func(e *layouterr.Error) {
		metrics.SimulationDivergedTotal.Inc()
		logger.WarnContext(ctx, "simulation diverged", "algorithm", algorithm, "details", e.Details)
		if errorreporting.IsSentryEnabled() {
			errorreporting.CaptureMessage(e.Error(), sentry.LevelWarning)
		}
		warnings = append(warnings, e.Error())
	}
	engine.OnCollisionUnresolved = func(e *layouterr.Error) {
		metrics.CollisionUnresolvedTotal.Inc()
		logger.WarnContext(ctx, "collision unresolved", "algorithm", algorithm, "details", e.Details)
		warnings = append(warnings, e.Error())
	}
	return &warnings
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComputeLayoutTotal counts compute_layout calls by algorithm and
	// outcome (ok, invalid_graph, unknown_algorithm).
	ComputeLayoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layout_compute_total",
			Help: "Total number of ComputeLayout invocations",
		},
		[]string{"algorithm", "outcome"},
	)

	ComputeLayoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "layout_compute_duration_seconds",
			Help:    "Duration of ComputeLayout by algorithm",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"algorithm"},
	)

	SimulationTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "force_simulation_ticks_total",
			Help: "Total number of force-simulation ticks executed",
		},
	)

	BarnesHutActivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "force_barnes_hut_activations_total",
			Help: "Total number of ticks where Barnes-Hut repulsion was used instead of direct summation",
		},
	)

	SimulationDivergedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "force_simulation_diverged_total",
			Help: "Total number of node positions clamped after exceeding the divergence bound",
		},
	)

	CollisionResolutionIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collision_resolution_iterations",
			Help:    "Number of iterations resolve_collisions took to settle or exhaust its budget",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200, 300},
		},
	)

	CollisionUnresolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collision_unresolved_total",
			Help: "Total number of resolve_collisions calls that exhausted max_iters with overlaps remaining",
		},
	)

	AnimationFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "animation_frames_total",
			Help: "Total number of animator frames emitted",
		},
	)

	AnimationsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "animations_started_total",
			Help: "Total number of animations started via transition_to",
		},
	)

	AnimationsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "animations_cancelled_total",
			Help: "Total number of animations cancelled before completion",
		},
	)

	LayoutCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layout_cache_hits_total",
			Help: "Total number of layout results served from the fingerprint cache",
		},
	)

	LayoutCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layout_cache_misses_total",
			Help: "Total number of layout requests that missed the fingerprint cache",
		},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Number of active WebSocket connections streaming animation frames",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket frame messages sent to clients",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"endpoint", "method", "status"},
	)
)

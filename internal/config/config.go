package config

import (
	"os"
	"strings"

	"github.com/lattice-viz/layoutengine/internal/utils"
)

// Config holds the demo layout server's configuration, derived from
// environment variables. The engine library itself (internal/force,
// internal/hierarchical, internal/circular, internal/grid) takes its
// knobs from caller-supplied LayoutConfig values, not from here; this
// package only configures the ambient process: logging, tracing,
// error reporting, and the HTTP surface. It also reads engine-knob
// defaults (the Force*, Hierarchical*, Circular* and Grid* fields) from
// the environment; the demo server's handlers do not use them and fill
// knobs a request omits from layoutengine.DefaultLayoutConfig instead.
type Config struct {
	LogLevel string

	ServerPort      string
	ServerReadHdr   int // header read timeout, seconds
	CORSAllowOrigin string

	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitPerIP bool

	CacheMaxItems   int64
	CacheTTLSeconds int

	AnimationDurationMs int

	ForceRepulsionStrength  float64
	ForceAttractionStrength float64
	ForceIdealEdgeLength    float64
	ForceCenterGravity      float64
	ForceDamping            float64
	ForceUseBarnesHut       bool
	ForceBarnesHutTheta     float64
	ForceMinSpacing         float64
	ForceCollisionStrength  float64

	HierarchicalLevelSeparation float64
	HierarchicalNodeSeparation  float64

	CircularRadius float64

	GridColumnSpacing float64
	GridRowSpacing    float64

	OTelExporterEndpoint string
	OTelServiceName      string
	SentryDSN            string
	Environment          string
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	cached = &Config{
		LogLevel: envString("LOG_LEVEL", "info"),

		ServerPort:      envString("SERVER_PORT", "8080"),
		ServerReadHdr:   utils.GetEnvAsInt("SERVER_READ_HEADER_TIMEOUT_S", 5),
		CORSAllowOrigin: envString("CORS_ALLOW_ORIGIN", "*"),

		RateLimitRPS:   utils.GetEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: utils.GetEnvAsInt("RATE_LIMIT_BURST", 40),
		RateLimitPerIP: utils.GetEnvAsBool("RATE_LIMIT_PER_IP", true),

		CacheMaxItems:   int64(utils.GetEnvAsInt("CACHE_MAX_ITEMS", 10000)),
		CacheTTLSeconds: utils.GetEnvAsInt("CACHE_TTL_SECONDS", 60),

		AnimationDurationMs: utils.GetEnvAsInt("ANIMATION_DURATION_MS", 500),

		ForceRepulsionStrength:  utils.GetEnvAsFloat("FORCE_REPULSION_STRENGTH", 200),
		ForceAttractionStrength: utils.GetEnvAsFloat("FORCE_ATTRACTION_STRENGTH", 0.1),
		ForceIdealEdgeLength:    utils.GetEnvAsFloat("FORCE_IDEAL_EDGE_LENGTH", 100),
		ForceCenterGravity:      utils.GetEnvAsFloat("FORCE_CENTER_GRAVITY", 0.02),
		ForceDamping:            utils.GetEnvAsFloat("FORCE_DAMPING", 0.9),
		ForceUseBarnesHut:       utils.GetEnvAsBool("FORCE_USE_BARNES_HUT", true),
		ForceBarnesHutTheta:     utils.GetEnvAsFloat("FORCE_BARNES_HUT_THETA", 0.5),
		ForceMinSpacing:         utils.GetEnvAsFloat("FORCE_MIN_SPACING", 20),
		ForceCollisionStrength:  utils.GetEnvAsFloat("FORCE_COLLISION_STRENGTH", 0.7),

		HierarchicalLevelSeparation: utils.GetEnvAsFloat("HIERARCHICAL_LEVEL_SEPARATION", 100),
		HierarchicalNodeSeparation:  utils.GetEnvAsFloat("HIERARCHICAL_NODE_SEPARATION", 50),

		CircularRadius: utils.GetEnvAsFloat("CIRCULAR_RADIUS", 100),

		GridColumnSpacing: utils.GetEnvAsFloat("GRID_COLUMN_SPACING", 100),
		GridRowSpacing:    utils.GetEnvAsFloat("GRID_ROW_SPACING", 100),

		OTelExporterEndpoint: envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelServiceName:      envString("OTEL_SERVICE_NAME", "layoutengine"),
		SentryDSN:            envString("SENTRY_DSN", ""),
		Environment:          envString("ENVIRONMENT", "development"),
	}
	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

package layoutserver

import (
	"math"

	"github.com/gorilla/mux"
	"github.com/lattice-viz/layoutengine/internal/config"
	"github.com/lattice-viz/layoutengine/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the demo HTTP surface, layering request IDs,
// panic recovery, security headers, CORS, rate limiting, compression,
// and body validation around the handlers.
func NewRouter(s *Server, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Per-IP limiting reuses the global rate/burst when enabled; when
	// disabled, an infinite rate makes the per-IP check a no-op without
	// special-casing it in RateLimiter itself.
	ipRate, ipBurst := cfg.RateLimitRPS, cfg.RateLimitBurst
	if !cfg.RateLimitPerIP {
		ipRate, ipBurst = math.Inf(1), 0
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, ipRate, ipBurst)

	cors := middleware.CORS(&middleware.CORSConfig{
		AllowedOrigins:   []string{cfg.CORSAllowOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoverWithSentry)
	r.Use(middleware.SecurityHeaders)
	r.Use(cors)
	r.Use(limiter.Limit)

	// /layout/stream is a WebSocket upgrade: it has no request body to
	// validate and gzip's compressionResponseWriter doesn't implement
	// http.Hijacker, which the upgrade needs. Everything else gets the
	// full stack, including compression and body validation.
	r.HandleFunc("/layout/stream", s.Stream).Methods("GET")

	plain := r.NewRoute().Subrouter()
	plain.Use(middleware.Gzip)
	plain.Use(middleware.ValidateRequestBody)

	plain.HandleFunc("/health", s.Health).Methods("GET")
	plain.HandleFunc("/layout", s.Layout).Methods("POST")
	plain.HandleFunc("/transition", s.Transition).Methods("POST")
	plain.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

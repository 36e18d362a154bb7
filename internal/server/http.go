package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

// PostgresPinger checks the pool.
func PostgresPinger(pool *pgxpool.Pool) Pinger {
	return func(ctx context.Context) error { return pool.Ping(ctx) }
}

// RedisPinger checks the redis client.
func RedisPinger(client *redis.Client) Pinger {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

// NewHTTPServer wires the trivia routes plus health, readiness and metrics.
// feedHandler can be nil when the event feed is disabled.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *trivia.HTTPHandlers, feedHandler http.HandlerFunc, deps ...Pinger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg.CORS, logger, handlers, feedHandler, deps...),
	}
}

// NewHandler builds the routed, middleware-wrapped handler tree.
func NewHandler(corsCfg config.CORS, logger zerolog.Logger, handlers *trivia.HTTPHandlers, feedHandler http.HandlerFunc, deps ...Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	handlers.Register(mux)
	mux.HandleFunc("/", handlers.NotFound)

	if feedHandler != nil {
		mux.HandleFunc("/ws/questions", feedHandler)
	}

	// metrics must see the same *http.Request the mux annotates with Pattern.
	var h http.Handler = corsMiddleware(corsCfg).Handler(mux)
	h = metrics.Middleware(h)
	h = logging.Middleware(logger)(h)
	return h
}

func corsMiddleware(cfg config.CORS) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, ping := range deps {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

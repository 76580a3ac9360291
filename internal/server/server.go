package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	custommiddleware "product-catalog/internal/middleware"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"
	"product-catalog/internal/transport"
	"product-catalog/migrations"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers into a chi router.
// redisClient may be nil, which disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      s.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := custommiddleware.NewMetrics(registry)

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack(requestTimeout)...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(s.logger))
	router.Use(custommiddleware.LoggingMiddleware(s.logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.CORSMiddleware(s.config.CORS.AllowedOrigins, s.config.Server.IsDevelopment()))

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Initialize repositories
	productRepo := repository.NewProductRepository(s.db.DB())
	categoryRepo := repository.NewCategoryRepository(s.db.DB())

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	productService := service.NewProductService(productRepo, categoryService)
	searchService := service.NewSearchService(productRepo)

	// Writes need a seller or admin token
	writers := []func(http.Handler) http.Handler{
		custommiddleware.AuthMiddleware(s.config.JWT.Secret, s.logger),
		custommiddleware.RequireCatalogWriter(s.logger),
	}

	var searchLimits []func(http.Handler) http.Handler
	if s.redis != nil {
		searchLimits = append(searchLimits, custommiddleware.RateLimitMiddleware(s.redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: s.config.RateLimit.Requests,
			Window:            s.config.RateLimit.Window,
			KeyPrefix:         "catalog:ratelimit:search",
		}, s.logger))
	}

	// Register routes
	transport.NewProductHandler(productService, s.logger).RegisterRoutes(router, writers...)
	transport.NewCategoryHandler(categoryService, s.logger).RegisterRoutes(router, writers...)
	transport.NewSearchHandler(searchService, s.logger).RegisterRoutes(router, searchLimits...)

	return router
}

// health reports database status and the applied schema version; 503 when the database is down
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := s.db.Health(ctx)
	body := map[string]any{
		"status":   status["status"],
		"database": status,
	}

	if s.db.DB() != nil {
		if version, err := database.MigrationVersion(ctx, s.db.DB(), migrations.FS); err == nil {
			body["schema_version"] = version
		}
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			body["redis"] = "down"
		} else {
			body["redis"] = "up"
		}
	}

	code := http.StatusOK
	if status["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	custommiddleware.RespondWithJSON(w, code, body)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"glossary-backend/application/services"
	"glossary-backend/infrastructure/config"
	"glossary-backend/infrastructure/observability"
	"glossary-backend/interfaces/http/rest/handlers"
	"glossary-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	service    *services.GlossaryService
	metrics    *observability.Collector
	logger     *zap.Logger
	instanceID string
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	service *services.GlossaryService,
	metrics *observability.Collector,
	logger *zap.Logger,
	instanceID string,
) *Router {
	return &Router{
		cfg:        cfg,
		service:    service,
		metrics:    metrics,
		logger:     logger,
		instanceID: instanceID,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(observability.MetricsMiddleware(rt.metrics))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Service info and health
	router.Get("/", rt.serviceInfo)
	router.Get("/health", rt.healthCheck)
	router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.Registry(), promhttp.HandlerOpts{}))

	// Glossary API
	glossaryHandler := handlers.NewGlossaryHandler(rt.service, rt.logger)
	router.Route("/api", func(r chi.Router) {
		r.Route("/glossary", func(r chi.Router) {
			r.Get("/", glossaryHandler.ListTerms)
			r.Post("/", glossaryHandler.CreateTerm)
			r.Get("/search/{keyword}", glossaryHandler.SearchTerms)
			r.Get("/{id}", glossaryHandler.GetTerm)
			r.Put("/{id}", glossaryHandler.UpdateTerm)
			r.Delete("/{id}", glossaryHandler.DeleteTerm)
		})
		r.Get("/statistics", glossaryHandler.Statistics)
	})

	return router
}

// serviceInfo handles GET /
func (rt *Router) serviceInfo(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, map[string]interface{}{
		"name":        "Glossary API",
		"version":     apiVersion,
		"description": "API for managing a glossary of DApp development terms",
		"instance_id": rt.instanceID,
	})
}

// healthCheck handles GET /health
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (rt *Router) writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rt.logger.Error("Failed to encode response", zap.Error(err))
	}
}

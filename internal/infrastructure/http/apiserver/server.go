// Package apiserver wires the chi router and owns the HTTP server
// lifecycle.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/infrastructure/config"
	"github.com/forkful/forkful/internal/infrastructure/http/handlers"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Recipes *handlers.RecipeHandler
	AI      *handlers.AIHandler
	Reviews *handlers.ReviewHandler
	Saved   *handlers.SavedRecipeHandler
	Contact *handlers.ContactHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Health  *handlers.HealthHandler
}

// Server is the API HTTP server.
type Server struct {
	server *http.Server
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(cfg *config.Config, h Handlers, resolver middleware.IdentityResolver, logger *zap.Logger) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(middleware.JSONOnly())
	if cfg.Server.EnableMetrics {
		r.Use(middleware.Metrics())
	}

	r.Get("/health", h.Health.Health)
	if cfg.Server.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	authenticate := middleware.Authenticate(cfg, resolver, logger)

	r.Route("/api", func(r chi.Router) {
		// Public surface, no session required.
		r.Get("/recipes", h.Recipes.List)
		r.Get("/recipes/featured", h.Recipes.Featured)
		r.Get("/recipes/{id}", h.Recipes.Get)
		r.Post("/contact", h.Contact.Submit)

		// Session surface.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/user", h.Auth.CurrentUser)

			r.Post("/recipes", h.Recipes.Create)
			r.Post("/recipes/generate-from-ingredients", h.AI.Generate)
			r.Post("/recipes/identify-from-photo", h.AI.Identify)
			r.Put("/recipes/{id}", h.Recipes.Update)
			r.Delete("/recipes/{id}", h.Recipes.Delete)

			r.Post("/recipes/{id}/reviews", h.Reviews.Create)
			r.Put("/reviews/{id}", h.Reviews.Update)
			r.Delete("/reviews/{id}", h.Reviews.Delete)

			r.Get("/saved-recipes", h.Saved.List)
			r.Post("/saved-recipes/{recipeID}", h.Saved.Save)
			r.Delete("/saved-recipes/{recipeID}", h.Saved.Unsave)
			r.Get("/saved-recipes/{recipeID}/status", h.Saved.Status)
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin())

			r.Get("/stats", h.Admin.Stats)

			r.Get("/users", h.Admin.ListUsers)
			r.Put("/users/{id}/role", h.Admin.ChangeRole)
			r.Delete("/users/{id}", h.Admin.DeleteUser)

			r.Get("/recipes", h.Admin.ListRecipes)
			r.Put("/recipes/{id}/feature", h.Admin.SetFeatured)
			r.Put("/recipes/{id}/approve", h.Admin.SetApproved)

			r.Get("/contact-messages", h.Admin.ListContact)
			r.Put("/contact-messages/{id}/read", h.Admin.MarkContactRead)

			r.Get("/settings", h.Admin.GetSettings)
			r.Put("/settings", h.Admin.UpdateSettings)
		})
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		cfg:    cfg,
		logger: logger.Named("apiserver"),
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving. It blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

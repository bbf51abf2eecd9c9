// Package routes configures the HTTP router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/linkyboard/linkyboard-api/app"
	"github.com/linkyboard/linkyboard-api/handlers"
	"github.com/linkyboard/linkyboard-api/middleware"
	"github.com/linkyboard/linkyboard-api/utils"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	correlation := middleware.NewCorrelation(deps.Logger, deps.Metrics,
		deps.Config.Observability.ExcludedPaths...)

	// Recovery runs inside correlation so panic responses still carry the
	// request id and timing headers.
	r.Use(correlation.Handler)
	r.Use(middleware.Recovery(deps.Logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{middleware.RequestIDHeader, middleware.ProcessTimeHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Probes and metrics sit outside the correlated surface.
	r.Get("/health", deps.HealthHandler.HandleHealth)
	r.Get("/health/ready", deps.HealthHandler.HandleReadiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", handlers.HandleAPIRoot(deps.Config.AppName))

		r.Route("/clipper", func(r chi.Router) {
			r.Post("/save-only", deps.ClipperHandler.HandleSaveOnly)
			r.Post("/summarize", deps.ClipperHandler.HandleSummarize)
			r.Post("/save-with-summary", deps.ClipperHandler.HandleSaveWithSummary)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/sync", deps.UserHandler.HandleSync)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

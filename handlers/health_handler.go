package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/utils"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles liveness and readiness probes.
type HealthHandler struct {
	appName     string
	environment string
	db          HealthChecker // nil when running on the stub layer
	logger      *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(appName, environment string, db HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		appName:     appName,
		environment: environment,
		db:          db,
		logger:      logger,
	}
}

// HandleHealth handles GET /health. Always 200 while the process is up.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteSuccess(w, "OK", map[string]interface{}{
		"status":      "healthy",
		"app_name":    h.appName,
		"environment": h.environment,
	})
}

// HandleReadiness handles GET /health/ready. 503 when the database is
// configured but unreachable.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"database": "not configured"}
	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			h.logger.Warn("database health check failed", zap.Error(err))
			_ = utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
				Success: false,
				Message: "Service not ready",
			})
			return
		}
		checks["database"] = "healthy"
	}

	_ = utils.WriteSuccess(w, "OK", map[string]interface{}{
		"status": "ready",
		"checks": checks,
	})
}

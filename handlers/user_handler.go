package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/services/users"
	"github.com/linkyboard/linkyboard-api/utils"
)

// UserSyncRequest mirrors the sync payload pushed by the main service.
type UserSyncRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// UserHandler handles user sync HTTP requests.
type UserHandler struct {
	service *users.Service
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *users.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// HandleSync handles POST /api/v1/users/sync
func (h *UserHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithRequestID(r.Context(), h.logger)

	var req UserSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w, logger, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, logger)
		return
	}

	user, err := h.service.Sync(r.Context(), req.UserID)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteSuccess(w, "User synced successfully", map[string]interface{}{
		"user_id":   user.ID,
		"is_active": user.IsActive,
	})
}

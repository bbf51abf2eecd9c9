package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/repositories"
	"github.com/linkyboard/linkyboard-api/utils"
)

// HandleServiceError maps service errors to envelope responses. Anything
// unrecognized is a 500 with a generic message; the real error only goes
// to the log.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		_ = utils.WriteNotFound(w, "")

	case utils.IsValidationError(err):
		HandleValidationError(w, err, logger)

	default:
		logger.Error("request failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
	}
}

// HandleValidationError writes a 400 envelope. Field errors are folded into
// the message since error envelopes carry null data.
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	message := "Validation failed"
	if fields := utils.GetValidationFields(err); len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, detail := range fields {
			parts = append(parts, detail)
		}
		sort.Strings(parts)
		message = "Validation failed: " + strings.Join(parts, "; ")
	} else if err != nil {
		message = err.Error()
	}

	if writeErr := utils.WriteBadRequest(w, message); writeErr != nil {
		logger.Error("failed to write validation error response", zap.Error(writeErr))
	}
}

// decodeError writes the 400 envelope for an unparseable request body.
func decodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Warn("failed to parse request body", zap.Error(err))
	_ = utils.WriteBadRequest(w, "Invalid request body")
}

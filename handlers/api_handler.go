package handlers

import (
	"net/http"

	"github.com/linkyboard/linkyboard-api/utils"
)

// APIVersion is reported by the v1 root endpoint.
const APIVersion = "1.0.0"

// HandleAPIRoot handles GET /api/v1/
func HandleAPIRoot(appName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteSuccess(w, "LinkyBoard API v1", map[string]interface{}{
			"version":  APIVersion,
			"app_name": appName,
		})
	}
}

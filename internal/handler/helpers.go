package handler

import (
	"net/http"

	"inkwell/internal/httputil"
)

// HealthCheck returns service health status
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

package handlers

import "net/http"

// Health handles GET /health. No auth, no rate limit.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import (
	"net/http"
)

// Health is a liveness probe. It does not touch the flight provider or the
// cache, so it stays green while upstream credentials are broken.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

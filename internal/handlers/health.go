package handlers

import (
	"log/slog"
	"net/http"

	"recipebox/internal/database"
)

// healthResponse is the body of GET /api/health.
type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Health reports whether the database answers a trivial query.
type Health struct {
	db database.Execer
}

// NewHealth creates the health handler.
func NewHealth(db database.Execer) *Health {
	return &Health{db: db}
}

// ServeHTTP handles GET /api/health.
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := database.Probe(r.Context(), h.db); err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, healthResponse{OK: false, Error: "db not reachable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

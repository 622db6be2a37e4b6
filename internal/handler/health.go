package handler

import (
	"net/http"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/ports"
	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	DB ports.HealthChecker
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
}

func (h HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Health(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

// ActivityLogHandler serves the admin audit trail. The log lives in the
// prefs store, newest-first and capped, not in the database.
type ActivityLogHandler struct {
	Prefs prefs.State
}

func (h ActivityLogHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapViewActivityLog)).Get("/activity-log", h.list)
	r.Post("/activity-log", h.append)
}

func (h ActivityLogHandler) list(w http.ResponseWriter, r *http.Request) {
	log, err := h.Prefs.ActivityLog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(log))
	for _, e := range log {
		resp = append(resp, map[string]any{
			"id":        e.ID,
			"timestamp": e.Timestamp.Format(time.RFC3339),
			"admin":     e.Admin,
			"action":    e.Action,
			"details":   e.Details,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ActivityLogHandler) append(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action  string `json:"action"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}
	admin := ""
	if user := authctx.FromContext(r.Context()); user != nil {
		admin = user.Name
	}
	if _, err := h.Prefs.AppendActivity(admin, req.Action, req.Details); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

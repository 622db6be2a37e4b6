package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type ClientHandler struct {
	Repo repository.ClientRepository
}

func (h ClientHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapManageClients)).Group(func(mr chi.Router) {
		mr.Get("/clients", h.list)
		mr.Post("/clients", h.upsert)
		mr.Delete("/clients/{id}", h.delete)
	})
}

func (h ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, clientResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      *int64 `json:"id"`
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := domain.Client{Name: req.Name, Phone: req.Phone, Email: req.Email, Address: req.Address}
	if req.ID != nil {
		c.ID = *req.ID
	}
	saved, err := h.Repo.Save(r.Context(), c)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, clientResponse(*saved))
}

func (h ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func clientResponse(c domain.Client) map[string]any {
	return map[string]any{
		"id":      c.ID,
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
	}
}

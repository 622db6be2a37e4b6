package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	Repo  repository.UserRepository
	Auth  *service.AuthService
	Prefs prefs.State
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapManageUsers)).Group(func(mr chi.Router) {
		mr.Get("/users", h.list)
		mr.Post("/users", h.create)
		mr.Put("/users/{id}/role", h.updateRole)
		mr.Delete("/users/{id}", h.delete)
	})
	r.With(guard.RequireCapability(perm.CapResetUserPassword)).
		Post("/users/{id}/reset-password", h.resetPassword)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	role := domain.UserRole(req.Role)
	if role != domain.RoleRoot && role != domain.RoleAdmin && role != domain.RoleUser {
		role = domain.RoleUser
	}
	// Only root may mint another root account.
	actor := authctx.FromContext(r.Context())
	if role == domain.RoleRoot && (actor == nil || actor.Role != domain.RoleRoot) {
		writeError(w, http.StatusForbidden, "only root can create root users")
		return
	}

	res, err := h.Auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if actor != nil {
		_, _ = h.Prefs.AppendActivity(actor.Name, "Usuário criado", res.User.Email)
	}
	writeJSON(w, http.StatusOK, userResponse(res.User))
}

func (h UserHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	role := domain.UserRole(req.Role)
	if role != domain.RoleRoot && role != domain.RoleAdmin && role != domain.RoleUser {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	actor := authctx.FromContext(r.Context())
	if role == domain.RoleRoot && (actor == nil || actor.Role != domain.RoleRoot) {
		writeError(w, http.StatusForbidden, "only root can grant root")
		return
	}
	if err := h.Repo.UpdateRole(r.Context(), id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if actor != nil {
		_, _ = h.Prefs.AppendActivity(actor.Name, "Papel alterado", user.Email+" → "+string(role))
	}
	writeJSON(w, http.StatusOK, userResponse(*user))
}

func (h UserHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new password is required")
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if actor := authctx.FromContext(r.Context()); actor != nil {
		_, _ = h.Prefs.AppendActivity(actor.Name, "Senha resetada", strconv.FormatInt(id, 10))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	actor := authctx.FromContext(r.Context())
	if actor != nil && actor.ID == id {
		writeError(w, http.StatusBadRequest, "cannot delete own account")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if actor != nil {
		_, _ = h.Prefs.AppendActivity(actor.Name, "Usuário excluído", strconv.FormatInt(id, 10))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

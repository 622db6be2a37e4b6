package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/cache"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type BannerHandler struct {
	Repo  repository.BannerRepository
	Cache *cache.StorefrontCache
}

func (h BannerHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapManageBanners)).Group(func(mr chi.Router) {
		mr.Get("/banners/all", h.listAll)
		mr.Post("/banners", h.upsert)
		mr.Delete("/banners/{id}", h.delete)
	})
}

func (h BannerHandler) listAll(w http.ResponseWriter, r *http.Request) {
	banners, err := h.Repo.List(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toBannerResponses(banners))
}

func (h BannerHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       *int64  `json:"id"`
		Title    string  `json:"title"`
		Image    string  `json:"image"`
		Link     string  `json:"link"`
		Active   bool    `json:"active"`
		Position flexInt `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	b := domain.Banner{
		Title:    req.Title,
		Image:    req.Image,
		Link:     req.Link,
		Active:   req.Active,
		Position: int(req.Position),
	}
	if req.ID != nil {
		b.ID = *req.ID
	}
	saved, err := h.Repo.Save(r.Context(), b)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "banner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, bannerResponse(*saved))
}

func (h BannerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "banner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func toBannerResponses(banners []domain.Banner) []map[string]any {
	out := make([]map[string]any, 0, len(banners))
	for _, b := range banners {
		out = append(out, bannerResponse(b))
	}
	return out
}

func bannerResponse(b domain.Banner) map[string]any {
	return map[string]any{
		"id":       b.ID,
		"title":    b.Title,
		"image":    b.Image,
		"link":     b.Link,
		"active":   b.Active,
		"position": b.Position,
	}
}

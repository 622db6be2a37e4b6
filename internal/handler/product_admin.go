package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/cache"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/pricing"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type ProductAdminHandler struct {
	Repo  repository.ProductRepository
	Prefs prefs.State
	Cache *cache.StorefrontCache
}

func (h ProductAdminHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapAddProduct)).Post("/products", h.upsert)
	r.With(guard.RequireCapability(perm.CapDeleteProduct)).Delete("/products/{id}", h.delete)
}

type productRequest struct {
	ID            *int64    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Supplier      string    `json:"supplier"`
	InStock       flexInt   `json:"inStock"`
	MinQty        flexInt   `json:"minQty"`
	Cost          flexFloat `json:"cost"`
	MarkupPercent string    `json:"markupPercent"`
	FinalPrice    flexFloat `json:"finalPrice"`
	Image         string    `json:"image"`
	IsFeatured    bool      `json:"isFeatured"`
	IsOffer       bool      `json:"isOffer"`
	WarrantyDays  flexInt   `json:"warrantyDays"`
}

func (h ProductAdminHandler) upsert(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.InStock < 0 || req.MinQty < 0 || req.Cost < 0 || req.FinalPrice < 0 || req.WarrantyDays < 0 {
		writeError(w, http.StatusBadRequest, "numeric fields must not be negative")
		return
	}
	if user != nil && req.ID != nil && !perm.Allowed(user.Role, perm.CapEditProduct) {
		writeError(w, http.StatusForbidden, "missing capability")
		return
	}

	quote := pricing.Quote{
		Cost:       float64(req.Cost),
		Markup:     req.MarkupPercent,
		FinalPrice: float64(req.FinalPrice),
	}
	// Derived mode wins: a valid markup recomputes the final price,
	// otherwise the submitted final price is authoritative.
	quote.SetMarkup(req.MarkupPercent)

	p := domain.Product{
		Name:          req.Name,
		Category:      req.Category,
		Brand:         req.Brand,
		Supplier:      req.Supplier,
		InStock:       int(req.InStock),
		MinQty:        int(req.MinQty),
		Cost:          quote.Cost,
		MarkupPercent: quote.Markup,
		FinalPrice:    quote.FinalPrice,
		Image:         req.Image,
		IsFeatured:    req.IsFeatured,
		IsOffer:       req.IsOffer,
		WarrantyDays:  int(req.WarrantyDays),
	}
	action := "Produto adicionado"
	if req.ID != nil {
		p.ID = *req.ID
		action = "Produto editado"
	}

	saved, err := h.Repo.Save(r.Context(), p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	actor := ""
	if user != nil {
		actor = user.Name
		if actor == "" {
			actor = user.Email
		}
	}
	_ = h.Repo.AppendHistory(r.Context(), saved.ID, domain.HistoryEntry{
		Actor:   actor,
		Action:  action,
		Details: fmt.Sprintf("%s (R$ %.2f)", saved.Name, saved.FinalPrice),
	})
	_, _ = h.Prefs.AppendActivity(actor, action, saved.Name)
	h.Cache.Invalidate(r.Context())

	writeJSON(w, http.StatusOK, productResponse(*saved))
}

func (h ProductAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user := authctx.FromContext(r.Context()); user != nil {
		_, _ = h.Prefs.AppendActivity(user.Name, "Produto excluído", strconv.FormatInt(id, 10))
	}
	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

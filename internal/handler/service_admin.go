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

type ServiceAdminHandler struct {
	Repo  repository.ServiceRepository
	Prefs prefs.State
	Cache *cache.StorefrontCache
}

func (h ServiceAdminHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapAddService)).Post("/services", h.upsert)
	r.With(guard.RequireCapability(perm.CapDeleteService)).Delete("/services/{id}", h.delete)
}

type serviceRequest struct {
	ID            *int64    `json:"id"`
	ServiceName   string    `json:"serviceName"`
	Supplier      string    `json:"supplier"`
	Brand         string    `json:"brand"`
	RepairType    string    `json:"repairType"`
	Technician    string    `json:"technician"`
	Cost          flexFloat `json:"cost"`
	MarkupPercent string    `json:"markupPercent"`
	FinalPrice    flexFloat `json:"finalPrice"`
	Image         string    `json:"image"`
	IsFeatured    bool      `json:"isFeatured"`
	IsOffer       bool      `json:"isOffer"`
	WarrantyDays  flexInt   `json:"warrantyDays"`
}

func (h ServiceAdminHandler) upsert(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ServiceName == "" {
		writeError(w, http.StatusBadRequest, "serviceName is required")
		return
	}
	if req.Cost < 0 || req.FinalPrice < 0 || req.WarrantyDays < 0 {
		writeError(w, http.StatusBadRequest, "numeric fields must not be negative")
		return
	}
	if user != nil && req.ID != nil && !perm.Allowed(user.Role, perm.CapEditService) {
		writeError(w, http.StatusForbidden, "missing capability")
		return
	}

	quote := pricing.Quote{
		Cost:       float64(req.Cost),
		Markup:     req.MarkupPercent,
		FinalPrice: float64(req.FinalPrice),
	}
	quote.SetMarkup(req.MarkupPercent)

	s := domain.Service{
		ServiceName:   req.ServiceName,
		Supplier:      req.Supplier,
		Brand:         req.Brand,
		RepairType:    req.RepairType,
		Technician:    req.Technician,
		Cost:          quote.Cost,
		MarkupPercent: quote.Markup,
		FinalPrice:    quote.FinalPrice,
		Image:         req.Image,
		IsFeatured:    req.IsFeatured,
		IsOffer:       req.IsOffer,
		WarrantyDays:  int(req.WarrantyDays),
	}
	action := "Serviço adicionado"
	if req.ID != nil {
		s.ID = *req.ID
		action = "Serviço editado"
	}

	saved, err := h.Repo.Save(r.Context(), s)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	actor := ""
	if user != nil {
		actor = user.Name
	}
	_ = h.Repo.AppendHistory(r.Context(), saved.ID, domain.HistoryEntry{
		Actor:   actor,
		Action:  action,
		Details: fmt.Sprintf("%s (R$ %.2f)", saved.ServiceName, saved.FinalPrice),
	})
	_, _ = h.Prefs.AppendActivity(actor, action, saved.ServiceName)
	h.Cache.Invalidate(r.Context())

	writeJSON(w, http.StatusOK, serviceResponse(*saved))
}

func (h ServiceAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user := authctx.FromContext(r.Context()); user != nil {
		_, _ = h.Prefs.AppendActivity(user.Name, "Serviço excluído", strconv.FormatInt(id, 10))
	}
	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

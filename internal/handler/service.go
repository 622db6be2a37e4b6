package handler

import (
	"net/http"
	"strconv"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/catalog"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type ServiceHandler struct {
	Repo     repository.ServiceRepository
	PageSize int
}

func (h ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.list)
	r.With(guard.RequireCapability(perm.CapViewServiceHistory)).
		Get("/services/{id}/history", h.history)
}

func (h ServiceHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := parseViewOptions(r, h.PageSize)
	page := catalog.View(len(items), catalog.ServiceSchema(items), opts)

	pageItems := make([]map[string]any, 0, len(page.Items))
	for _, i := range page.Items {
		pageItems = append(pageItems, serviceResponse(items[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      toServiceResponses(items),
		"pageItems":  pageItems,
		"totalPages": page.TotalPages,
		"page":       page.Page,
	})
}

func (h ServiceHandler) history(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	entries, err := h.Repo.ListHistory(r.Context(), id, 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponses(entries))
}

func toServiceResponses(items []domain.Service) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, s := range items {
		out = append(out, serviceResponse(s))
	}
	return out
}

func serviceResponse(s domain.Service) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"serviceName":   s.ServiceName,
		"supplier":      s.Supplier,
		"brand":         s.Brand,
		"repairType":    s.RepairType,
		"technician":    s.Technician,
		"cost":          s.Cost,
		"markupPercent": s.MarkupPercent,
		"finalPrice":    s.FinalPrice,
		"image":         s.Image,
		"isFeatured":    s.IsFeatured,
		"isOffer":       s.IsOffer,
		"warrantyDays":  s.WarrantyDays,
	}
}

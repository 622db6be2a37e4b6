package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/catalog"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	Repo     repository.ProductRepository
	PageSize int
}

func (h ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/purchase-list", h.purchaseList)
	r.With(guard.RequireCapability(perm.CapViewProductHistory)).
		Get("/products/{id}/history", h.history)
}

// list returns the full collection plus, when view parameters are
// present, the derived page for the stock table.
func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := parseViewOptions(r, h.PageSize)
	page := catalog.View(len(items), catalog.ProductSchema(items), opts)

	pageItems := make([]map[string]any, 0, len(page.Items))
	for _, i := range page.Items {
		pageItems = append(pageItems, productResponse(items[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      toProductResponses(items),
		"pageItems":  pageItems,
		"totalPages": page.TotalPages,
		"page":       page.Page,
	})
}

// purchaseList is the printable immediate-purchase set: every product
// at or below its minimum quantity, independent of any view state.
func (h ProductHandler) purchaseList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	low := catalog.LowStock(len(items), catalog.ProductSchema(items))
	resp := make([]map[string]any, 0, len(low))
	for _, i := range low {
		resp = append(resp, productResponse(items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProductHandler) history(w http.ResponseWriter, r *http.Request) {
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

func toProductResponses(items []domain.Product) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, p := range items {
		out = append(out, productResponse(p))
	}
	return out
}

func productResponse(p domain.Product) map[string]any {
	return map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"category":      p.Category,
		"brand":         p.Brand,
		"supplier":      p.Supplier,
		"inStock":       p.InStock,
		"minQty":        p.MinQty,
		"cost":          p.Cost,
		"markupPercent": p.MarkupPercent,
		"finalPrice":    p.FinalPrice,
		"image":         p.Image,
		"isFeatured":    p.IsFeatured,
		"isOffer":       p.IsOffer,
		"warrantyDays":  p.WarrantyDays,
		"lowStock":      p.LowStock(),
	}
}

func toHistoryResponses(entries []domain.HistoryEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"id":        e.ID,
			"actor":     e.Actor,
			"action":    e.Action,
			"details":   e.Details,
			"timestamp": e.LoggedAt.Format(time.RFC3339),
		})
	}
	return out
}

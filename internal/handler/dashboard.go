package handler

import (
	"net/http"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	Products repository.ProductRepository
	Prefs    prefs.State
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapViewDashboardCharts)).
		Get("/dashboard/stock-value", h.stockValue)
}

// stockValue recomputes the current total stock value, records a sample
// when it changed, and returns the capped series for the chart.
func (h DashboardHandler) stockValue(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total := domain.TotalStockValue(products)
	history, err := h.Prefs.RecordStockValue(total)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	samples := make([]map[string]any, 0, len(history))
	for _, s := range history {
		samples = append(samples, map[string]any{
			"date":       s.Date.Format(time.RFC3339),
			"totalValue": s.TotalValue,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"currentValue": total,
		"history":      samples,
	})
}

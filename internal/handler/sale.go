package handler

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/pricing"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SaleHandler struct {
	Repo  repository.SaleRepository
	Prefs prefs.State
}

func (h SaleHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapViewSalesHistory)).Get("/sales", h.list)
	r.Post("/sales", h.create)
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Repo.List(r.Context(), 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, saleResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

type saleItemRequest struct {
	ProductID *int64    `json:"productId"`
	Name      string    `json:"name"`
	Qty       flexInt   `json:"qty"`
	UnitPrice flexFloat `json:"unitPrice"`
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	var req struct {
		IdempotencyKey string            `json:"idempotencyKey"`
		ClientID       *int64            `json:"clientId"`
		PaymentMethod  string            `json:"paymentMethod"`
		Items          []saleItemRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	// The client may send its own idempotency key for retries; a fresh
	// one is minted otherwise.
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	sale := domain.Sale{
		Code:           receiptCode(time.Now()),
		IdempotencyKey: req.IdempotencyKey,
		Date:           time.Now(),
		ClientID:       req.ClientID,
		PaymentMethod:  req.PaymentMethod,
	}
	if user != nil {
		sale.Seller = user.Name
	}
	for _, it := range req.Items {
		if it.Qty <= 0 {
			writeError(w, http.StatusBadRequest, "item qty must be positive")
			return
		}
		if it.UnitPrice < 0 {
			writeError(w, http.StatusBadRequest, "item price must not be negative")
			return
		}
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       int(it.Qty),
			UnitPrice: float64(it.UnitPrice),
		})
		sale.Total += float64(it.Qty) * float64(it.UnitPrice)
	}
	sale.Total = pricing.Round2(sale.Total)

	saved, err := h.Repo.Create(r.Context(), sale)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user != nil {
		_, _ = h.Prefs.AppendActivity(user.Name, "Venda registrada",
			fmt.Sprintf("%s (R$ %.2f)", saved.Code, saved.Total))
	}
	writeJSON(w, http.StatusOK, saleResponse(*saved))
}

// receiptCode formats a human-readable receipt reference like
// BC-20240131-X7K2.
func receiptCode(now time.Time) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return fmt.Sprintf("BC-%s-%s", now.Format("20060102"), b.String())
}

func saleResponse(s domain.Sale) map[string]any {
	items := make([]map[string]any, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"qty":       it.Qty,
			"unitPrice": it.UnitPrice,
		})
	}
	return map[string]any{
		"id":            s.ID,
		"code":          s.Code,
		"date":          s.Date.Format(time.RFC3339),
		"seller":        s.Seller,
		"clientId":      s.ClientID,
		"paymentMethod": s.PaymentMethod,
		"total":         s.Total,
		"items":         items,
	}
}

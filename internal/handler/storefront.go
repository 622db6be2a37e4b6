package handler

import (
	"log/slog"
	"net/http"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/cache"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/go-chi/chi/v5"
)

// StorefrontHandler serves the public shop page: featured items,
// current offers and active banners. No authentication; read failures
// degrade to empty sections so the page always renders.
type StorefrontHandler struct {
	Products repository.ProductRepository
	Services repository.ServiceRepository
	Banners  repository.BannerRepository
	Cache    *cache.StorefrontCache
	Logger   *slog.Logger
}

func (h StorefrontHandler) RegisterRoutes(r chi.Router) {
	r.Get("/storefront", h.storefront)
	r.Get("/banners", h.activeBanners)
}

type storefrontPayload struct {
	Featured []map[string]any `json:"featured"`
	Offers   []map[string]any `json:"offers"`
	Services []map[string]any `json:"services"`
	Banners  []map[string]any `json:"banners"`
}

func (h StorefrontHandler) storefront(w http.ResponseWriter, r *http.Request) {
	var payload storefrontPayload
	if h.Cache.Get(r.Context(), &payload) {
		writeJSON(w, http.StatusOK, payload)
		return
	}

	products, err := h.Products.List(r.Context())
	if err != nil {
		h.Logger.Warn("storefront products unavailable", "err", err)
		products = nil
	}
	services, err := h.Services.List(r.Context())
	if err != nil {
		h.Logger.Warn("storefront services unavailable", "err", err)
		services = nil
	}
	banners, err := h.Banners.List(r.Context(), true)
	if err != nil {
		h.Logger.Warn("storefront banners unavailable", "err", err)
		banners = nil
	}

	payload = storefrontPayload{
		Featured: []map[string]any{},
		Offers:   []map[string]any{},
		Services: []map[string]any{},
		Banners:  toBannerResponses(banners),
	}
	for _, p := range products {
		if p.IsFeatured {
			payload.Featured = append(payload.Featured, publicProduct(p))
		}
		if p.IsOffer {
			payload.Offers = append(payload.Offers, publicProduct(p))
		}
	}
	for _, s := range services {
		if s.IsFeatured {
			payload.Services = append(payload.Services, publicService(s))
		}
	}

	h.Cache.Set(r.Context(), payload)
	writeJSON(w, http.StatusOK, payload)
}

func (h StorefrontHandler) activeBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.Banners.List(r.Context(), true)
	if err != nil {
		h.Logger.Warn("banners unavailable", "err", err)
		banners = nil
	}
	writeJSON(w, http.StatusOK, toBannerResponses(banners))
}

// publicProduct hides cost and stock figures from the public page.
func publicProduct(p domain.Product) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"category":     p.Category,
		"brand":        p.Brand,
		"price":        p.FinalPrice,
		"image":        p.Image,
		"isOffer":      p.IsOffer,
		"warrantyDays": p.WarrantyDays,
	}
}

func publicService(s domain.Service) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"serviceName":  s.ServiceName,
		"repairType":   s.RepairType,
		"price":        s.FinalPrice,
		"image":        s.Image,
		"warrantyDays": s.WarrantyDays,
	}
}

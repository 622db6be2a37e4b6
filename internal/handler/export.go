package handler

import (
	"net/http"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/repository"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/guard"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

type ExportHandler struct {
	Products repository.ProductRepository
}

func (h ExportHandler) RegisterRoutes(r chi.Router) {
	r.With(guard.RequireCapability(perm.CapExportCsv)).
		Get("/products/export", h.exportProducts)
}

func (h ExportHandler) exportProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.Products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := buildProductSheet(items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := "produtos-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func buildProductSheet(items []domain.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Produtos"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Produto", "Categoria", "Marca", "Fornecedor",
		"Em Estoque", "Qtda. Mínima", "Garantia (dias)", "Preço", "Markup %", "Preço Final"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, p := range items {
		row := r + 2
		values := []any{
			p.ID,
			p.Name,
			p.Category,
			p.Brand,
			p.Supplier,
			p.InStock,
			p.MinQty,
			p.WarrantyDays,
			p.Cost,
			p.MarkupPercent,
			p.FinalPrice,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

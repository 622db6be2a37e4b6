package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/prefs"
	"github.com/go-chi/chi/v5"
)

// PrefsHandler exposes the column-layout preference for the stock
// tables. Unknown or unsaved tables answer with the fallback layout.
type PrefsHandler struct {
	Prefs prefs.State
}

var fallbackProductColumns = []prefs.Column{
	{ID: "image", Label: "Imagem", Align: "left", Visible: true},
	{ID: "name", Label: "Produto", Sortable: true, Align: "left", Visible: true},
	{ID: "category", Label: "Categoria", Sortable: true, Align: "left", Visible: true},
	{ID: "brand", Label: "Marca", Sortable: true, Align: "left", Visible: true},
	{ID: "supplier", Label: "Fornecedor", Sortable: true, Align: "left", Visible: true},
	{ID: "inStock", Label: "Em Estoque", Sortable: true, Align: "left", Visible: true},
	{ID: "minQty", Label: "Qtda. Mínima", Sortable: true, Align: "left", Visible: true},
	{ID: "warrantyDays", Label: "Garantia (dias)", Sortable: true, Align: "left", Visible: true},
	{ID: "cost", Label: "Preço", Sortable: true, Align: "left", Visible: true},
	{ID: "finalPrice", Label: "Preço Final", Sortable: true, Align: "left", Visible: true},
	{ID: "actions", Label: "Ações", Align: "right", Visible: true},
}

var fallbackServiceColumns = []prefs.Column{
	{ID: "image", Label: "Imagem", Align: "left", Visible: true},
	{ID: "serviceName", Label: "Serviço", Sortable: true, Align: "left", Visible: true},
	{ID: "supplier", Label: "Fornecedor", Sortable: true, Align: "left", Visible: true},
	{ID: "brand", Label: "Marca", Sortable: true, Align: "left", Visible: true},
	{ID: "repairType", Label: "Tipo de Reparo", Sortable: true, Align: "left", Visible: true},
	{ID: "technician", Label: "Técnico", Sortable: true, Align: "left", Visible: true},
	{ID: "warrantyDays", Label: "Garantia (dias)", Sortable: true, Align: "left", Visible: true},
	{ID: "cost", Label: "Preço", Sortable: true, Align: "left", Visible: true},
	{ID: "finalPrice", Label: "Preço Final", Sortable: true, Align: "left", Visible: true},
	{ID: "actions", Label: "Ações", Align: "right", Visible: true},
}

func (h PrefsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/prefs/columns/{table}", h.getColumns)
	r.Put("/prefs/columns/{table}", h.saveColumns)
}

func (h PrefsHandler) getColumns(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	fallback, ok := fallbackColumnsFor(table)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown table")
		return
	}
	cols, err := h.Prefs.Columns(table, fallback)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (h PrefsHandler) saveColumns(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if _, ok := fallbackColumnsFor(table); !ok {
		writeError(w, http.StatusNotFound, "unknown table")
		return
	}
	var cols []prefs.Column
	if err := json.NewDecoder(r.Body).Decode(&cols); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(cols) == 0 {
		writeError(w, http.StatusBadRequest, "columns must not be empty")
		return
	}
	if err := h.Prefs.SaveColumns(table, cols); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func fallbackColumnsFor(table string) ([]prefs.Column, bool) {
	switch table {
	case "products":
		return fallbackProductColumns, true
	case "services":
		return fallbackServiceColumns, true
	}
	return nil, false
}

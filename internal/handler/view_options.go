package handler

import (
	"net/http"
	"strconv"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/catalog"
)

// parseViewOptions reads the list-view state from query parameters.
// Absent or malformed values fall back to defaults; a list request
// never fails on its view state.
func parseViewOptions(r *http.Request, defaultPageSize int) catalog.Options {
	q := r.URL.Query()
	opts := catalog.Options{
		Search:    q.Get("search"),
		SortKey:   q.Get("sortKey"),
		Direction: catalog.Ascending,
		Page:      1,
		PageSize:  defaultPageSize,
	}
	if q.Get("sortDir") == string(catalog.Descending) {
		opts.Direction = catalog.Descending
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		opts.PageSize = size
	}
	if low, err := strconv.ParseBool(q.Get("lowStock")); err == nil {
		opts.LowStockOnly = low
	}
	return opts
}

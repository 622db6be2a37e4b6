// Package catalog derives the list views the stock pages render:
// search, stable sort, pagination and the low-stock query. It is pure
// and works on already-fetched collections.
package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// DefaultPageSize matches the stock table's page length.
const DefaultPageSize = 5

// Options is the view state for one listing.
type Options struct {
	Search       string
	SortKey      string
	Direction    SortDirection
	Page         int
	PageSize     int
	LowStockOnly bool
}

// Page is one derived view over a collection.
type Page struct {
	Items      []int // indexes into the input collection, view order
	TotalPages int
	Page       int // requested page clamped into [1, TotalPages]
}

// Field is one sortable value. Exactly one of Str/Num is meaningful,
// chosen by Numeric.
type Field struct {
	Str     string
	Num     float64
	Numeric bool
}

func StringField(s string) Field  { return Field{Str: s} }
func NumberField(n float64) Field { return Field{Num: n, Numeric: true} }

// Schema describes how the engine reads one element of a collection.
// Strings compare byte-wise (ordinal, not locale-aware). LowStock may
// be nil for collections without stock tracking.
type Schema struct {
	Name     func(i int) string
	Field    func(i int, key string) (Field, bool)
	LowStock func(i int) bool
}

// View filters, sorts and paginates a collection of n elements.
//
// The result never errors: unknown sort keys leave the original order,
// an empty collection produces one empty page, and an out-of-range page
// request is clamped instead of returning an empty page when a valid
// one exists.
func View(n int, schema Schema, opts Options) Page {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}

	idx := make([]int, 0, n)
	needle := strings.ToLower(opts.Search)
	for i := 0; i < n; i++ {
		if needle != "" && !strings.Contains(strings.ToLower(schema.Name(i)), needle) {
			continue
		}
		if opts.LowStockOnly && (schema.LowStock == nil || !schema.LowStock(i)) {
			continue
		}
		idx = append(idx, i)
	}

	if opts.SortKey != "" {
		sortIndexes(idx, schema, opts.SortKey, opts.Direction)
	}

	totalPages := int(math.Ceil(float64(len(idx)) / float64(opts.PageSize)))
	if totalPages < 1 {
		totalPages = 1
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * opts.PageSize
	end := start + opts.PageSize
	if start > len(idx) {
		start = len(idx)
	}
	if end > len(idx) {
		end = len(idx)
	}

	return Page{Items: idx[start:end], TotalPages: totalPages, Page: page}
}

// LowStock returns the indexes of every low-stock element, in original
// order and independent of any view state. This feeds the immediate
// purchase list.
func LowStock(n int, schema Schema) []int {
	if schema.LowStock == nil {
		return nil
	}
	var out []int
	for i := 0; i < n; i++ {
		if schema.LowStock(i) {
			out = append(out, i)
		}
	}
	return out
}

func sortIndexes(idx []int, schema Schema, key string, dir SortDirection) {
	// Ties keep their original relative order so re-sorting on another
	// field never jitters unrelated rows.
	sort.SliceStable(idx, func(a, b int) bool {
		fa, okA := schema.Field(idx[a], key)
		fb, okB := schema.Field(idx[b], key)
		if !okA || !okB {
			return false
		}
		var less bool
		if fa.Numeric && fb.Numeric {
			if fa.Num == fb.Num {
				return false
			}
			less = fa.Num < fb.Num
		} else {
			sa, sb := fieldString(fa), fieldString(fb)
			if sa == sb {
				return false
			}
			less = sa < sb
		}
		if dir == Descending {
			return !less
		}
		return less
	})
}

// fieldString stringifies a field for the rare mixed-type sort key.
func fieldString(f Field) string {
	if !f.Numeric {
		return f.Str
	}
	return strconv.FormatFloat(f.Num, 'f', -1, 64)
}

package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/catalog"
)

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`79.9`, 79.9},
		{`"79,90"`, 79.9},
		{`"79.90"`, 79.9},
		{`""`, 0},
		{`"abc"`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var doc struct {
			V flexFloat `json:"v"`
		}
		if err := json.Unmarshal([]byte(`{"v":`+tt.in+`}`), &doc); err != nil {
			t.Errorf("input %s: %v", tt.in, err)
			continue
		}
		if float64(doc.V) != tt.want {
			t.Errorf("input %s: got %v, want %v", tt.in, doc.V, tt.want)
		}
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`7`, 7},
		{`"7"`, 7},
		{`""`, 0},
		{`"sete"`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var doc struct {
			V flexInt `json:"v"`
		}
		if err := json.Unmarshal([]byte(`{"v":`+tt.in+`}`), &doc); err != nil {
			t.Errorf("input %s: %v", tt.in, err)
			continue
		}
		if int(doc.V) != tt.want {
			t.Errorf("input %s: got %v, want %v", tt.in, doc.V, tt.want)
		}
	}
}

func TestParseViewOptions(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?search=fone&sortKey=cost&sortDir=descending&page=2&pageSize=10&lowStock=true", nil)
	got := parseViewOptions(req, 5)

	want := catalog.Options{
		Search:       "fone",
		SortKey:      "cost",
		Direction:    catalog.Descending,
		Page:         2,
		PageSize:     10,
		LowStockOnly: true,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseViewOptions_Defaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?page=abc&pageSize=-1", nil)
	got := parseViewOptions(req, 5)

	if got.Page != 1 || got.PageSize != 5 || got.Direction != catalog.Ascending || got.LowStockOnly {
		t.Errorf("got %+v, want defaults", got)
	}
}

package catalog

import (
	"reflect"
	"testing"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
)

func stockProducts() []domain.Product {
	return []domain.Product{
		{Name: "Fone de Ouvido Cyber", Category: "Acessórios", InStock: 10, MinQty: 5, Cost: 20, FinalPrice: 35},
		{Name: "Capinha Galaxy S23", Category: "Capinhas", InStock: 4, MinQty: 5, Cost: 8, FinalPrice: 15},
		{Name: "Película iPhone 15", Category: "Películas", InStock: 5, MinQty: 5, Cost: 3, FinalPrice: 10},
		{Name: "Carregador Turbo", Category: "Carregadores", InStock: 6, MinQty: 5, Cost: 12, FinalPrice: 25},
	}
}

func view(items []domain.Product, opts Options) Page {
	return View(len(items), ProductSchema(items), opts)
}

func TestView_SearchCaseInsensitive(t *testing.T) {
	items := stockProducts()
	got := view(items, Options{Search: "cyber"})
	if len(got.Items) != 1 || items[got.Items[0]].Name != "Fone de Ouvido Cyber" {
		t.Errorf("search %q returned indexes %v", "cyber", got.Items)
	}

	got = view(items, Options{Search: "CYBER"})
	if len(got.Items) != 1 {
		t.Errorf("uppercase search should match the same row, got %v", got.Items)
	}
}

func TestView_EmptySearchKeepsEverything(t *testing.T) {
	items := stockProducts()
	got := view(items, Options{})
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(got.Items, want) {
		t.Errorf("got %v, want %v", got.Items, want)
	}
}

func TestView_StableSortKeepsTieOrder(t *testing.T) {
	items := []domain.Product{
		{Name: "B", InStock: 1},
		{Name: "A", InStock: 2},
		{Name: "A", InStock: 3},
	}
	got := view(items, Options{SortKey: "name", Direction: Ascending})
	// The two "A" rows keep their original relative order.
	if want := []int{1, 2, 0}; !reflect.DeepEqual(got.Items, want) {
		t.Errorf("got %v, want %v", got.Items, want)
	}
}

func TestView_SortDirections(t *testing.T) {
	items := stockProducts()

	asc := view(items, Options{SortKey: "cost", Direction: Ascending})
	if want := []int{2, 1, 3, 0}; !reflect.DeepEqual(asc.Items, want) {
		t.Errorf("ascending cost: got %v, want %v", asc.Items, want)
	}

	desc := view(items, Options{SortKey: "cost", Direction: Descending})
	if want := []int{0, 3, 1, 2}; !reflect.DeepEqual(desc.Items, want) {
		t.Errorf("descending cost: got %v, want %v", desc.Items, want)
	}
}

func TestView_UnknownSortKeyKeepsOrder(t *testing.T) {
	items := stockProducts()
	got := view(items, Options{SortKey: "nonsense"})
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(got.Items, want) {
		t.Errorf("got %v, want %v", got.Items, want)
	}
}

func TestView_PaginationClampsPage(t *testing.T) {
	items := make([]domain.Product, 12)
	for i := range items {
		items[i].Name = "Produto"
	}

	got := view(items, Options{Page: 999, PageSize: 5})
	if got.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", got.TotalPages)
	}
	if got.Page != 3 {
		t.Errorf("Page = %d, want clamp to 3", got.Page)
	}
	if len(got.Items) != 2 {
		t.Errorf("last page has %d items, want 2", len(got.Items))
	}

	got = view(items, Options{Page: 0, PageSize: 5})
	if got.Page != 1 {
		t.Errorf("Page = %d, want clamp to 1", got.Page)
	}
}

func TestView_EmptyCollection(t *testing.T) {
	got := view(nil, Options{Page: 3})
	if got.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", got.TotalPages)
	}
	if got.Page != 1 {
		t.Errorf("Page = %d, want 1", got.Page)
	}
	if len(got.Items) != 0 {
		t.Errorf("Items = %v, want empty", got.Items)
	}
}

func TestView_LowStockFilter(t *testing.T) {
	items := stockProducts()
	got := view(items, Options{LowStockOnly: true})
	// indexes 1 (4 <= 5) and 2 (5 <= 5); index 3 (6 > 5) stays out
	if want := []int{1, 2}; !reflect.DeepEqual(got.Items, want) {
		t.Errorf("got %v, want %v", got.Items, want)
	}
}

func TestLowStock_Boundary(t *testing.T) {
	items := []domain.Product{
		{Name: "abaixo", InStock: 4, MinQty: 5},
		{Name: "no limite", InStock: 5, MinQty: 5},
		{Name: "acima", InStock: 6, MinQty: 5},
	}
	got := LowStock(len(items), ProductSchema(items))
	if want := []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLowStock_NilPredicate(t *testing.T) {
	services := []domain.Service{{ServiceName: "Troca de Tela"}}
	if got := LowStock(len(services), ServiceSchema(services)); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

package domain

import "testing"

func TestTotalStockValue(t *testing.T) {
	products := []Product{
		{Cost: 10, InStock: 3},
		{Cost: 2.5, InStock: 4},
		{Cost: 99, InStock: 0},
	}
	if got := TotalStockValue(products); got != 40 {
		t.Errorf("TotalStockValue = %v, want 40", got)
	}
	if got := TotalStockValue(nil); got != 0 {
		t.Errorf("TotalStockValue(nil) = %v, want 0", got)
	}
}

package pricing

import "testing"

func TestQuote_DerivedRecompute(t *testing.T) {
	q := Quote{}
	q.SetCost(100)
	q.SetMarkup("25")

	if q.Mode() != Derived {
		t.Fatalf("Mode = %q, want %q", q.Mode(), Derived)
	}
	if q.FinalPrice != 125 {
		t.Errorf("FinalPrice = %v, want 125", q.FinalPrice)
	}

	q.SetCost(80)
	if q.FinalPrice != 100 {
		t.Errorf("FinalPrice after cost change = %v, want 100", q.FinalPrice)
	}
}

func TestQuote_DerivedRounding(t *testing.T) {
	tests := []struct {
		cost   float64
		markup string
		want   float64
	}{
		{10, "33", 13.30},
		{9.99, "10", 10.99},
		{3.333, "0", 3.33},
		{7, "14,5", 8.02},
	}
	for _, tt := range tests {
		q := Quote{Cost: tt.cost}
		q.SetMarkup(tt.markup)
		if q.FinalPrice != tt.want {
			t.Errorf("cost %v markup %q: FinalPrice = %v, want %v", tt.cost, tt.markup, q.FinalPrice, tt.want)
		}
	}
}

func TestQuote_SetFinalPriceClearsMarkup(t *testing.T) {
	q := Quote{Cost: 100}
	q.SetMarkup("25")

	q.SetFinalPrice(140)
	if q.Markup != "" {
		t.Errorf("Markup = %q, want empty", q.Markup)
	}
	if q.Mode() != Manual {
		t.Errorf("Mode = %q, want %q", q.Mode(), Manual)
	}
	if q.FinalPrice != 140 {
		t.Errorf("FinalPrice = %v, want 140", q.FinalPrice)
	}

	// Cost edits no longer touch the manual price.
	q.SetCost(200)
	if q.FinalPrice != 140 {
		t.Errorf("FinalPrice after cost change = %v, want 140", q.FinalPrice)
	}
}

func TestQuote_ClearingMarkupKeepsLastPrice(t *testing.T) {
	q := Quote{Cost: 100}
	q.SetMarkup("25")
	q.SetMarkup("")

	if q.Mode() != Manual {
		t.Errorf("Mode = %q, want %q", q.Mode(), Manual)
	}
	if q.FinalPrice != 125 {
		t.Errorf("FinalPrice = %v, want the last computed 125", q.FinalPrice)
	}
}

func TestQuote_InvalidMarkupFallsBackToManual(t *testing.T) {
	for _, raw := range []string{"-5", "abc", "10%", "--"} {
		q := Quote{Cost: 100, FinalPrice: 90}
		q.SetMarkup(raw)
		if q.Mode() != Manual {
			t.Errorf("markup %q: Mode = %q, want %q", raw, q.Mode(), Manual)
		}
		if q.FinalPrice != 90 {
			t.Errorf("markup %q: FinalPrice = %v, want untouched 90", raw, q.FinalPrice)
		}
		if q.Markup != raw {
			t.Errorf("markup %q: raw input not preserved, got %q", raw, q.Markup)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.004, 1.00},
		{1.006, 1.01},
		{2.675, 2.68},
		{-1.006, -1.01},
		{125, 125},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"14,5", 14.5},
		{"14.5", 14.5},
		{" 100 ", 100},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

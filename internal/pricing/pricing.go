// Package pricing implements the two-mode price rule shared by the
// product and service forms.
//
// A quote is either Manual (markup empty, the final price is whatever
// the user typed) or Derived (markup is a valid non-negative percent
// and the final price is recomputed from cost on every change). The raw
// markup string is kept verbatim so an invalid value stays visible for
// the user to correct while computation falls back to Manual.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

type Mode string

const (
	Manual  Mode = "manual"
	Derived Mode = "derived"
)

// Quote is the pricing state of one item being created or edited.
type Quote struct {
	Cost       float64
	Markup     string // raw input, possibly invalid
	FinalPrice float64
}

// Mode reports which of the two mutually exclusive states holds.
// Invalid markup counts as Manual for computation purposes.
func (q Quote) Mode() Mode {
	if _, ok := parseMarkup(q.Markup); ok {
		return Derived
	}
	return Manual
}

// SetCost updates the cost and recomputes the final price when in
// Derived mode.
func (q *Quote) SetCost(cost float64) {
	q.Cost = cost
	q.recompute()
}

// SetMarkup stores the raw markup input. A valid non-negative value
// switches the quote to Derived mode and recomputes the final price;
// clearing the field returns to Manual mode keeping the last computed
// final price as the new manual value.
func (q *Quote) SetMarkup(raw string) {
	q.Markup = raw
	q.recompute()
}

// SetFinalPrice makes the final price authoritative user input,
// clearing the markup (Manual mode).
func (q *Quote) SetFinalPrice(price float64) {
	q.FinalPrice = price
	q.Markup = ""
}

func (q *Quote) recompute() {
	markup, ok := parseMarkup(q.Markup)
	if !ok {
		return
	}
	q.FinalPrice = Round2(q.Cost * (1 + markup/100))
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Normalize coerces a numeric string from the wire: comma decimal
// separators become dots, blank or unparsable input yields zero.
func Normalize(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseMarkup(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

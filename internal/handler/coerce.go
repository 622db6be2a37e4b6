package handler

import (
	"bytes"
	"strconv"
	"strings"
)

// flexFloat accepts JSON numbers or strings ("79,90", "79.90") and
// normalizes comma decimal separators. Blank or unparsable input
// coerces to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts JSON integers or numeric strings; anything else
// coerces to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}

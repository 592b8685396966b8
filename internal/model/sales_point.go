package model

import "strings"

// SalesPoint is a validated point-of-sale identifier: up to 5 digits,
// zero-padded to 5 in its canonical form
type SalesPoint struct {
	value string
}

// CreateSalesPoint validates and canonicalizes a sales point number
func CreateSalesPoint(raw string) (SalesPoint, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || !isDigits(cleaned) {
		return SalesPoint{}, NewValidationError("invoice.punto_venta", raw, "format",
			"punto de venta must contain only numbers")
	}
	if len(cleaned) > 5 {
		return SalesPoint{}, NewValidationError("invoice.punto_venta", raw, "length",
			"punto de venta must be up to 5 digits long")
	}
	return SalesPoint{value: zeroPad(cleaned, 5)}, nil
}

// String returns the canonical 5-digit form
func (p SalesPoint) String() string {
	return p.value
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

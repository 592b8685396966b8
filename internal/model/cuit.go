package model

import "strings"

// CUIT is a validated taxpayer identification number
// (Código Único de Identificación Tributaria): exactly 11 decimal digits.
type CUIT struct {
	value string
}

// NormalizeCUIT strips everything but decimal digits from a raw CUIT string.
// "20-12345678-3" and "20.12345678.3" normalize to "20123456783".
func NormalizeCUIT(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateCUIT normalizes and validates a raw CUIT string
func CreateCUIT(raw string) (CUIT, error) {
	cleaned := NormalizeCUIT(raw)
	if cleaned == "" {
		return CUIT{}, NewValidationError("cuit", raw, "format", "CUIT must contain only numbers")
	}
	if len(cleaned) != 11 {
		return CUIT{}, NewValidationError("cuit", raw, "length", "CUIT must be exactly 11 digits long")
	}
	return CUIT{value: cleaned}, nil
}

// String returns the canonical 11-digit form
func (c CUIT) String() string {
	return c.value
}

// IsZero reports whether the CUIT is the unset zero value
func (c CUIT) IsZero() bool {
	return c.value == ""
}

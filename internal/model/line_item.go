package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/afip-submitter/internal/decimal"
)

// VatRate is the portal's code for a line item's IVA treatment. Besides the
// fixed percentages it has two non-rate states: untaxed and exempt.
type VatRate int

const (
	VatNoGravado   VatRate = 1 // untaxed
	VatExento      VatRate = 2 // exempt
	VatCero        VatRate = 3 // 0%
	VatDiezCinco   VatRate = 4 // 10.5%
	VatVeintiuno   VatRate = 5 // 21%
	VatVeintisiete VatRate = 6 // 27%
	VatCinco       VatRate = 8 // 5%
	VatDosCinco    VatRate = 9 // 2.5%
)

type vatRateInfo struct {
	description string
	rate        decimal.Decimal
}

var vatRates = map[VatRate]vatRateInfo{
	VatNoGravado:   {"No gravado", decimal.Zero},
	VatExento:      {"Exento", decimal.Zero},
	VatCero:        {"0%", decimal.Zero},
	VatDosCinco:    {"2,5%", money.MustFromString("2.5")},
	VatCinco:       {"5%", money.MustFromString("5")},
	VatDiezCinco:   {"10,5%", money.MustFromString("10.5")},
	VatVeintiuno:   {"21%", money.MustFromString("21")},
	VatVeintisiete: {"27%", money.MustFromString("27")},
}

// vatRateAliases maps the record-set spellings to codes. Percentages use a
// dot as decimal separator; the non-rate states use their Spanish names.
var vatRateAliases = map[string]VatRate{
	"NO_GRAVADO": VatNoGravado,
	"EXENTO":     VatExento,
	"0":          VatCero,
	"2.5":        VatDosCinco,
	"5":          VatCinco,
	"10.5":       VatDiezCinco,
	"21":         VatVeintiuno,
	"27":         VatVeintisiete,
}

// Description returns the portal's display label for the rate
func (r VatRate) Description() string {
	if info, ok := vatRates[r]; ok {
		return info.description
	}
	return fmt.Sprintf("VatRate(%d)", int(r))
}

// Percent returns the percentage the rate applies (zero for the non-rate states)
func (r VatRate) Percent() decimal.Decimal {
	if info, ok := vatRates[r]; ok {
		return info.rate
	}
	return decimal.Zero
}

// Name returns the record-set spelling for the rate
func (r VatRate) Name() string {
	for name, code := range vatRateAliases {
		if code == r {
			return name
		}
	}
	return fmt.Sprintf("VatRate(%d)", int(r))
}

// IsValid reports whether the rate is a known portal code
func (r VatRate) IsValid() bool {
	_, ok := vatRates[r]
	return ok
}

// VatRates returns all known rates in ascending code order
func VatRates() []VatRate {
	rates := make([]VatRate, 0, len(vatRates))
	for r := range vatRates {
		rates = append(rates, r)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i] < rates[j] })
	return rates
}

// ParseVatRate parses an IVA rate from its record-set spelling
func ParseVatRate(s string) (VatRate, error) {
	if r, ok := vatRateAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return 0, NewValidationError("items.iva_rate", s, "membership",
		fmt.Sprintf("IVA rate must be one of %s", strings.Join(vatRateSpellings(), ", ")))
}

func vatRateSpellings() []string {
	spellings := make([]string, 0, len(vatRateAliases))
	for s := range vatRateAliases {
		spellings = append(spellings, s)
	}
	sort.Strings(spellings)
	return spellings
}

// ServiceCode is a validated service/activity code: up to 4 digits,
// zero-padded to 4 in its canonical form
type ServiceCode struct {
	value string
}

// CreateServiceCode validates and canonicalizes a service code
func CreateServiceCode(raw string) (ServiceCode, error) {
	cleaned := strings.TrimSpace(raw)
	if !isDigits(cleaned) {
		return ServiceCode{}, NewValidationError("items.code", raw, "format",
			"service code must contain only numbers")
	}
	if len(cleaned) > 4 {
		return ServiceCode{}, NewValidationError("items.code", raw, "length",
			"service code must be up to 4 digits long")
	}
	return ServiceCode{value: zeroPad(cleaned, 4)}, nil
}

// String returns the canonical 4-digit form
func (c ServiceCode) String() string {
	return c.value
}

// CreateUnitPrice validates a unit price: non-negative, at most 19 digits in
// total and at most 2 decimal places
func CreateUnitPrice(raw string) (decimal.Decimal, error) {
	d, err := money.FromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, NewValidationError("items.unit_price", raw, "format", "invalid unit price format")
	}
	if d.IsNegative() {
		return decimal.Zero, NewValidationError("items.unit_price", raw, "range", "unit price cannot be negative")
	}
	if digitCount(d) > 19 {
		return decimal.Zero, NewValidationError("items.unit_price", raw, "length",
			"unit price cannot exceed 19 digits in total")
	}
	if d.Exponent() < -2 {
		return decimal.Zero, NewValidationError("items.unit_price", raw, "scale",
			"unit price cannot have more than 2 decimal places")
	}
	return d, nil
}

// CreateDiscountPercent validates a discount percentage: between 0 and 100,
// at most 6 digits in total and at most 2 decimal places. Empty input means
// no discount.
func CreateDiscountPercent(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := money.FromString(cleaned)
	if err != nil {
		return decimal.Zero, NewValidationError("items.discount_percentage", raw, "format",
			"invalid discount percentage format")
	}
	if d.IsNegative() || d.GreaterThan(money.Hundred) {
		return decimal.Zero, NewValidationError("items.discount_percentage", raw, "range",
			"discount percentage must be between 0 and 100")
	}
	if digitCount(d) > 6 {
		return decimal.Zero, NewValidationError("items.discount_percentage", raw, "length",
			"discount percentage cannot exceed 6 digits in total")
	}
	if d.Exponent() < -2 {
		return decimal.Zero, NewValidationError("items.discount_percentage", raw, "scale",
			"discount percentage cannot have more than 2 decimal places")
	}
	return d, nil
}

func digitCount(d decimal.Decimal) int {
	s := strings.TrimPrefix(d.String(), "-")
	return len(strings.ReplaceAll(s, ".", ""))
}

// ServiceLine is a validated invoice line for a service. The IVA rate is
// required for Responsable Inscripto issuers and must be absent for
// Monotributo, whose documents never discriminate VAT.
type ServiceLine struct {
	IssuerType  IssuerType
	Code        ServiceCode
	Description string
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Rate        VatRate // zero for Monotributo issuers
}

// CreateServiceLine validates a complete service line. rate is the raw IVA
// rate spelling; pass the empty string for Monotributo issuers.
func CreateServiceLine(issuerType IssuerType, code, description, unitPrice, discount, rate string) (ServiceLine, error) {
	sc, err := CreateServiceCode(code)
	if err != nil {
		return ServiceLine{}, err
	}
	price, err := CreateUnitPrice(unitPrice)
	if err != nil {
		return ServiceLine{}, err
	}
	disc, err := CreateDiscountPercent(discount)
	if err != nil {
		return ServiceLine{}, err
	}

	line := ServiceLine{
		IssuerType:  issuerType,
		Code:        sc,
		Description: strings.TrimSpace(description),
		UnitPrice:   price,
		Discount:    disc,
	}

	switch issuerType {
	case IssuerResponsableInscripto:
		if strings.TrimSpace(rate) == "" {
			return ServiceLine{}, NewValidationError("items.iva_rate", nil, "required",
				"IVA rate is required for Responsable Inscripto")
		}
		r, err := ParseVatRate(rate)
		if err != nil {
			return ServiceLine{}, err
		}
		line.Rate = r
	case IssuerMonotributo:
		if strings.TrimSpace(rate) != "" {
			return ServiceLine{}, NewValidationError("items.iva_rate", rate, "forbidden",
				"IVA rate should not be specified for Monotributo")
		}
	default:
		return ServiceLine{}, NewValidationError("issuer.type", int(issuerType), "membership", "unknown issuer type")
	}
	return line, nil
}

// DiscountedPrice returns the unit price after applying the discount
func (l ServiceLine) DiscountedPrice() decimal.Decimal {
	if l.Discount.IsZero() {
		return l.UnitPrice
	}
	return money.ApplyDiscount(l.UnitPrice, l.Discount)
}

// VatAmount returns the IVA charged on the discounted price. Always zero
// for Monotributo issuers.
func (l ServiceLine) VatAmount() decimal.Decimal {
	if l.IssuerType == IssuerMonotributo || !l.Rate.IsValid() {
		return decimal.Zero
	}
	return money.Percentage(l.DiscountedPrice(), l.Rate.Percent())
}

// TotalPrice returns the discounted price plus IVA
func (l ServiceLine) TotalPrice() decimal.Decimal {
	return l.DiscountedPrice().Add(l.VatAmount())
}

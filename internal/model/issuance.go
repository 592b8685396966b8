package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the portal's date format (dd/mm/yyyy)
const DateLayout = "02/01/2006"

// issuanceWindowDays is how far from today the portal accepts issuance dates
const issuanceWindowDays = 10

// ConceptType says whether the invoice covers goods, services or both.
// Codes are the select-option values of the issuance form.
type ConceptType int

const (
	ConceptProductos           ConceptType = 1
	ConceptServicios           ConceptType = 2
	ConceptProductosYServicios ConceptType = 3
)

var conceptTypeNames = map[string]ConceptType{
	"PRODUCTOS":             ConceptProductos,
	"SERVICIOS":             ConceptServicios,
	"PRODUCTOS_Y_SERVICIOS": ConceptProductosYServicios,
}

var conceptTypeDescriptions = map[ConceptType]string{
	ConceptProductos:           "Productos",
	ConceptServicios:           "Servicios",
	ConceptProductosYServicios: "Productos y Servicios",
}

// Description returns the portal's display label for the concept
func (c ConceptType) Description() string {
	if desc, ok := conceptTypeDescriptions[c]; ok {
		return desc
	}
	return fmt.Sprintf("ConceptType(%d)", int(c))
}

// IsValid reports whether the concept type is a known value
func (c ConceptType) IsValid() bool {
	_, ok := conceptTypeDescriptions[c]
	return ok
}

// IncludesServices reports whether the concept covers services, which makes
// a billing period mandatory
func (c ConceptType) IncludesServices() bool {
	return c == ConceptServicios || c == ConceptProductosYServicios
}

// ParseConceptType parses a concept type from its record-set name
func ParseConceptType(s string) (ConceptType, error) {
	if c, ok := conceptTypeNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, NewValidationError("invoice.concept_type", s, "membership",
		"concept type must be PRODUCTOS, SERVICIOS or PRODUCTOS_Y_SERVICIOS")
}

// PortalDate is a validated calendar date in the portal's dd/mm/yyyy format
type PortalDate struct {
	t time.Time
}

// CreatePortalDate parses a date in dd/mm/yyyy format
func CreatePortalDate(field, value string) (PortalDate, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return PortalDate{}, NewValidationError(field, value, "format", "date must be in dd/mm/yyyy format")
	}
	return PortalDate{t: t}, nil
}

// Format returns the date in the portal's required dd/mm/yyyy form
func (d PortalDate) Format() string {
	return d.t.Format(DateLayout)
}

// Time returns the underlying time value
func (d PortalDate) Time() time.Time {
	return d.t
}

// Before reports whether d falls before other
func (d PortalDate) Before(other PortalDate) bool {
	return d.t.Before(other.t)
}

// BillingPeriod is the validated service period of an invoice:
// start <= end <= payment due, payment due >= today, start <= today
type BillingPeriod struct {
	Start      PortalDate
	End        PortalDate
	PaymentDue PortalDate
}

// CreateBillingPeriod validates the period ordering rules against now
func CreateBillingPeriod(start, end, paymentDue string, now time.Time) (BillingPeriod, error) {
	s, err := CreatePortalDate("invoice.service_period.start_date", start)
	if err != nil {
		return BillingPeriod{}, err
	}
	e, err := CreatePortalDate("invoice.service_period.end_date", end)
	if err != nil {
		return BillingPeriod{}, err
	}
	due, err := CreatePortalDate("invoice.service_period.payment_due_date", paymentDue)
	if err != nil {
		return BillingPeriod{}, err
	}

	today := truncateToDay(now)
	if e.Before(s) {
		return BillingPeriod{}, NewValidationError("invoice.service_period", nil, "ordering",
			"end date cannot be before start date")
	}
	if due.Before(e) {
		return BillingPeriod{}, NewValidationError("invoice.service_period", nil, "ordering",
			"payment due date cannot be before end date")
	}
	if due.t.Before(today) {
		return BillingPeriod{}, NewValidationError("invoice.service_period.payment_due_date", due.Format(), "ordering",
			"payment due date cannot be before today")
	}
	if s.t.After(today) {
		return BillingPeriod{}, NewValidationError("invoice.service_period.start_date", s.Format(), "ordering",
			"start date cannot be after today")
	}
	return BillingPeriod{Start: s, End: e, PaymentDue: due}, nil
}

// IssuanceData is the validated input for the issuance-data form
type IssuanceData struct {
	Date        PortalDate
	Concept     ConceptType
	Period      *BillingPeriod // nil unless the concept includes services
}

// CreateIssuanceData validates the issuance date against the portal's
// +-10-day window and enforces the billing-period requirement for services.
// Period dates may be empty when the concept covers products only.
func CreateIssuanceData(issuanceDate string, concept ConceptType, start, end, paymentDue string, now time.Time) (IssuanceData, error) {
	if !concept.IsValid() {
		return IssuanceData{}, NewValidationError("invoice.concept_type", int(concept), "membership", "unknown concept type")
	}

	d, err := CreatePortalDate("invoice.issuance_date", issuanceDate)
	if err != nil {
		return IssuanceData{}, err
	}

	today := truncateToDay(now)
	window := issuanceWindowDays * 24 * time.Hour
	if d.t.Before(today.Add(-window)) || d.t.After(today.Add(window)) {
		return IssuanceData{}, NewValidationError("invoice.issuance_date", d.Format(), "window",
			fmt.Sprintf("issuance date must be within %d days of today", issuanceWindowDays))
	}

	data := IssuanceData{Date: d, Concept: concept}

	if start != "" || end != "" || paymentDue != "" {
		period, err := CreateBillingPeriod(start, end, paymentDue, now)
		if err != nil {
			return IssuanceData{}, err
		}
		data.Period = &period
	}

	if concept.IncludesServices() && data.Period == nil {
		return IssuanceData{}, NewValidationError("invoice.service_period", nil, "required",
			"billing period is required when concept includes services")
	}
	return data, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package model

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// InvoiceRequest is one raw, not-yet-validated record from the input set.
// Field layout follows the JSON record format; every value arrives as the
// operator typed it and is only trusted after Validate.
type InvoiceRequest struct {
	Issuer struct {
		CUIT string `json:"cuit"`
		Type string `json:"type"`
	} `json:"issuer"`

	Recipient struct {
		CUIT         string `json:"cuit,omitempty"`
		IVACondition string `json:"iva_condition"`
	} `json:"recipient"`

	Invoice struct {
		Type         string `json:"type"`
		PuntoVenta   string `json:"punto_venta"`
		IssuanceDate string `json:"issuance_date"`
		ConceptType  string `json:"concept_type"`
		Currency     string `json:"currency,omitempty"`

		ServicePeriod struct {
			StartDate      string `json:"start_date,omitempty"`
			EndDate        string `json:"end_date,omitempty"`
			PaymentDueDate string `json:"payment_due_date,omitempty"`
		} `json:"service_period"`

		Payment struct {
			Methods []string `json:"methods"`
		} `json:"payment"`

		Items struct {
			Code               string `json:"code"`
			Concept            string `json:"concept"`
			UnitPrice          string `json:"unit_price"`
			IVARate            string `json:"iva_rate,omitempty"`
			DiscountPercentage string `json:"discount_percentage,omitempty"`
		} `json:"items"`
	} `json:"invoice"`
}

// IssuerKey returns the normalized issuer CUIT used for grouping. Grouping
// must work even for records that will later fail validation, so this never
// errors; it just strips punctuation.
func (r *InvoiceRequest) IssuerKey() string {
	return NormalizeCUIT(r.Issuer.CUIT)
}

// ParseRequests decodes the JSON input record set: an array with one
// element per invoice to issue
func ParseRequests(r io.Reader) ([]*InvoiceRequest, error) {
	var requests []*InvoiceRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&requests); err != nil {
		return nil, fmt.Errorf("invalid invoice record set: %w", err)
	}
	return requests, nil
}

// Invoice is the fully validated aggregate for one submission. Built once
// by Validate, then owned exclusively by a single pipeline run.
type Invoice struct {
	IssuerCUIT CUIT
	IssuerType IssuerType
	TypeInfo   InvoiceTypeInfo
	Issuance   IssuanceData
	Recipient  Recipient
	Payment    PaymentInfo
	Line       ServiceLine
	Currency   Currency // zero value means the portal default (pesos)
}

// Validate runs every domain validator over the raw request and assembles
// the immutable Invoice aggregate. It fails on the first violated rule with
// a ValidationError naming the offending field; no network interaction
// happens here or anywhere before it.
func (r *InvoiceRequest) Validate(now time.Time) (*Invoice, error) {
	issuerCUIT, err := CreateCUIT(r.Issuer.CUIT)
	if err != nil {
		return nil, err
	}

	issuerType, err := ParseIssuerType(r.Issuer.Type)
	if err != nil {
		return nil, err
	}

	invoiceType, err := ParseInvoiceType(r.Invoice.Type)
	if err != nil {
		return nil, err
	}

	typeInfo, err := CreateInvoiceTypeInfo(invoiceType, issuerType, r.Invoice.PuntoVenta)
	if err != nil {
		return nil, err
	}

	concept, err := ParseConceptType(r.Invoice.ConceptType)
	if err != nil {
		return nil, err
	}

	issuance, err := CreateIssuanceData(
		r.Invoice.IssuanceDate,
		concept,
		r.Invoice.ServicePeriod.StartDate,
		r.Invoice.ServicePeriod.EndDate,
		r.Invoice.ServicePeriod.PaymentDueDate,
		now,
	)
	if err != nil {
		return nil, err
	}

	condition, err := ParseVatCondition(r.Recipient.IVACondition)
	if err != nil {
		return nil, err
	}

	recipient, err := CreateRecipient(condition, issuerType, invoiceType, r.Recipient.CUIT)
	if err != nil {
		return nil, err
	}

	payment, err := CreatePaymentInfo(r.Invoice.Payment.Methods...)
	if err != nil {
		return nil, err
	}

	line, err := CreateServiceLine(
		issuerType,
		r.Invoice.Items.Code,
		r.Invoice.Items.Concept,
		r.Invoice.Items.UnitPrice,
		r.Invoice.Items.DiscountPercentage,
		r.Invoice.Items.IVARate,
	)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		IssuerCUIT: issuerCUIT,
		IssuerType: issuerType,
		TypeInfo:   typeInfo,
		Issuance:   issuance,
		Recipient:  recipient,
		Payment:    payment,
		Line:       line,
	}

	if r.Invoice.Currency != "" {
		currency, err := CreateCurrency(CurrencyCode(r.Invoice.Currency))
		if err != nil {
			return nil, err
		}
		inv.Currency = currency
	}
	return inv, nil
}

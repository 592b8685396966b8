// Package afiplib provides a public API for submitting electronic invoices
// through AFIP's Comprobantes en Línea portal.
//
// This package exposes the core types for validating invoice record sets,
// scheduling them into issuer-disjoint batches and running them through
// the portal's generator wizard.
//
// Example usage:
//
//	submitter := afiplib.NewSubmitter(provider, auth, ops)
//	results, err := submitter.Submit(ctx, requests)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.IssuerCUIT, r.Status)
//	}
package afiplib

import "github.com/rezonia/afip-submitter/internal/model"

// Re-export core types for public API
type (
	Invoice          = model.Invoice
	InvoiceRequest   = model.InvoiceRequest
	ProcessingResult = model.ProcessingResult
	CUIT             = model.CUIT
	IssuerType       = model.IssuerType
	InvoiceType      = model.InvoiceType
	VatCondition     = model.VatCondition
	VatRate          = model.VatRate
	PaymentMethod    = model.PaymentMethod
	CurrencyCode     = model.CurrencyCode
)

// Re-export issuer regimes
const (
	IssuerResponsableInscripto = model.IssuerResponsableInscripto
	IssuerMonotributo          = model.IssuerMonotributo
)

// Re-export result statuses
const (
	StatusSuccess = model.StatusSuccess
	StatusFailed  = model.StatusFailed
)

// Re-export error types
type (
	ValidationError   = model.ValidationError
	SessionError      = model.SessionError
	StepError         = model.StepError
	BusinessRejection = model.BusinessRejection
)

// ParseRequests decodes a JSON record set into raw invoice requests
var ParseRequests = model.ParseRequests

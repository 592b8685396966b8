package model

// ResultStatus is the final disposition of one submission
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFailed  ResultStatus = "failed"
)

// ProcessingResult records the outcome of one invoice request. Created once
// when its pipeline run finishes or aborts, never mutated afterwards.
type ProcessingResult struct {
	IssuerCUIT  string       `json:"issuer_cuit"`
	InvoiceType string       `json:"invoice_type"`
	Status      ResultStatus `json:"status"`
	DocumentID  string       `json:"document_id,omitempty"`
	File        string       `json:"file,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Succeeded reports whether the submission completed
func (r ProcessingResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

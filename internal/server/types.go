package server

import "github.com/rezonia/afip-submitter/internal/model"

// SubmitResponse is the response for the submit endpoint
type SubmitResponse struct {
	Total     int                      `json:"total"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Batches   int                      `json:"batches"`
	Results   []model.ProcessingResult `json:"results"`
}

// RequestValidation is the per-request element of the validate response
type RequestValidation struct {
	Index      int    `json:"index"`
	IssuerCUIT string `json:"issuer_cuit"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool                `json:"valid"`
	Requests []RequestValidation `json:"requests"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

package portal

import (
	"context"
	"strings"

	"github.com/rezonia/afip-submitter/internal/model"
)

// TypeSelection carries the inputs of the invoice-type selection step
type TypeSelection struct {
	SalesPoint  string // canonical 5-digit form
	InvoiceType int    // portal option code
	Description string
}

// IssuanceForm carries the inputs of the issuance-data step. Period fields
// are empty when the concept covers products only.
type IssuanceForm struct {
	IssuanceDate string // dd/mm/yyyy
	ConceptType  int    // portal option code
	PeriodStart  string
	PeriodEnd    string
	PaymentDue   string
}

// RecipientForm carries the inputs of the recipient-data step
type RecipientForm struct {
	VatCondition     int // portal option code
	RecipientCUIT    string
	PaymentMethods   []int // portal checkbox codes
	RequiresCardData bool
}

// ContentForm carries the inputs of the line-items step
type ContentForm struct {
	ServiceCode string // canonical 4-digit form
	Description string
	UnitPrice   string
	Discount    string
	VatRate     int // portal option code, 0 when the issuer does not discriminate VAT
}

// ConfirmRequest carries the inputs of the confirmation step
type ConfirmRequest struct {
	IssuerCUIT string
}

// ConfirmResult is the successful outcome of the confirmation step: the
// portal returned a document id and the generated PDF was downloaded
type ConfirmResult struct {
	DocumentID string
	Filename   string
	PDF        []byte
}

// StepOperations are the form-filling operations behind the submission
// pipeline, one per state. Each reports success or failure for its step;
// Confirm additionally returns the generated document. Business rejections
// surface as *model.BusinessRejection errors from Confirm.
type StepOperations interface {
	NavigateToGenerator(ctx context.Context, s Session) error
	SelectInvoiceType(ctx context.Context, s Session, sel TypeSelection) error
	FillIssuanceData(ctx context.Context, s Session, form IssuanceForm) error
	FillRecipientData(ctx context.Context, s Session, form RecipientForm) error
	FillLineItems(ctx context.Context, s Session, form ContentForm) error
	Confirm(ctx context.Context, s Session, req ConfirmRequest) (*ConfirmResult, error)
}

// Message markers the portal embeds in its confirmation-page error banner.
// They are the only stable way to classify why a document failed.
const (
	markerPDFError            = "<!--pdferror-->"
	markerCAEError            = "<!--caeerror-->"
	markerAdditionalDataError = "<!--datosadicionaleserror-->"
)

// ClassifyRejection maps a confirmation-page error message to a categorized
// business rejection using the portal's fixed marker table
func ClassifyRejection(message string) *model.BusinessRejection {
	switch {
	case strings.Contains(message, markerPDFError):
		return model.NewBusinessRejection(model.RejectionPDFRender,
			"PDF Generation Error: invoice created but cannot be printed at this time")
	case strings.Contains(message, markerCAEError):
		return model.NewBusinessRejection(model.RejectionAuthorizationCode,
			"Authorization Code Error: invalid invoice - could not generate authorization code")
	case strings.Contains(message, markerAdditionalDataError):
		return model.NewBusinessRejection(model.RejectionSupplementaryData,
			"Additional Data Error: failed to load additional invoice data")
	default:
		return model.NewBusinessRejection(model.RejectionUnknown, "Unknown error: "+message)
	}
}

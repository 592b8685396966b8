// Package pipeline drives one invoice submission through the portal's
// four-page generator wizard as a strictly ordered state machine. Every
// domain value is validated before the first network interaction; a failed
// step is terminal for the run and never touches sibling submissions.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/afip-submitter/internal/document"
	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/portal"
)

// State identifies a stage of the submission state machine
type State int

const (
	StateAuthenticating State = iota
	StateNavigating
	StateSelectingType
	StateFillingIssuance
	StateFillingRecipient
	StateFillingContent
	StateConfirming
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateAuthenticating:   "authenticating",
	StateNavigating:       "navigating",
	StateSelectingType:    "selecting_type",
	StateFillingIssuance:  "filling_issuance",
	StateFillingRecipient: "filling_recipient",
	StateFillingContent:   "filling_content",
	StateConfirming:       "confirming",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// next returns the state that follows on success. Transitions are linear;
// the only branch is success versus the terminal Failed state.
func (s State) next() State {
	if s >= StateConfirming {
		return StateDone
	}
	return s + 1
}

// Pipeline executes single-invoice submissions against a session provider
// and the portal step operations
type Pipeline struct {
	provider portal.SessionProvider
	auth     portal.Authenticator
	ops      portal.StepOperations

	stepTimeout time.Duration
	verifyPDF   bool
	downloadDir string
	now         func() time.Time
	log         zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStepTimeout bounds each step's external waits
func WithStepTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.stepTimeout = d
	}
}

// WithDownloadVerification toggles structural validation of the downloaded
// invoice PDF at the confirmation step
func WithDownloadVerification(enabled bool) Option {
	return func(p *Pipeline) {
		p.verifyPDF = enabled
	}
}

// WithDownloadDir makes the pipeline file each downloaded PDF under
// dir/<issuer CUIT>/. Empty disables saving.
func WithDownloadDir(dir string) Option {
	return func(p *Pipeline) {
		p.downloadDir = dir
	}
}

// WithLogger sets the pipeline logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithClock overrides the time source used for date-window validation
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a submission pipeline
func New(provider portal.SessionProvider, auth portal.Authenticator, ops portal.StepOperations, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider:    provider,
		auth:        auth,
		ops:         ops,
		stepTimeout: 30 * time.Second,
		verifyPDF:   true,
		now:         time.Now,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one invoice request through validation and the submission
// state machine. Every failure kind is converted into a failed
// ProcessingResult here; nothing propagates to the caller. The session is
// released on all exit paths before the result is returned.
func (p *Pipeline) Process(ctx context.Context, req *model.InvoiceRequest) model.ProcessingResult {
	result := model.ProcessingResult{
		IssuerCUIT:  req.IssuerKey(),
		InvoiceType: req.Invoice.Type,
		Status:      model.StatusFailed,
	}

	inv, err := req.Validate(p.now())
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.IssuerCUIT = inv.IssuerCUIT.String()

	log := p.log.With().
		Str("issuer_cuit", inv.IssuerCUIT.String()).
		Str("invoice_type", inv.TypeInfo.Code.Name()).
		Logger()

	if inv.Payment.RequiresCardData() {
		log.Warn().Msg("selected payment method requires card data, which is not filled in")
	}

	session, err := p.provider.Acquire(ctx)
	if err != nil {
		result.Error = model.NewSessionError("could not acquire session", err).Error()
		return result
	}
	defer p.provider.Release(session)

	log.Debug().Str("session", session.ID()).Msg("session acquired")

	state := StateAuthenticating
	for state != StateDone && state != StateFailed {
		stepErr := p.runState(ctx, state, session, inv, &result)
		if stepErr != nil {
			result.Error = stepErr.Error()
			log.Error().Str("state", state.String()).Msg(result.Error)
			state = StateFailed
			break
		}
		log.Debug().Str("state", state.String()).Msg("step completed")
		state = state.next()
	}

	if state == StateDone {
		result.Status = model.StatusSuccess
		result.Error = ""
		log.Info().Str("document_id", result.DocumentID).Msg("invoice generated")
	}
	return result
}

// runState dispatches the current state's operation with the validated
// inputs it needs
func (p *Pipeline) runState(ctx context.Context, state State, s portal.Session, inv *model.Invoice, result *model.ProcessingResult) error {
	stepCtx, cancel := context.WithTimeout(ctx, p.stepTimeout)
	defer cancel()

	switch state {
	case StateAuthenticating:
		return p.wrap(portal.StepAuthenticate, "authentication failed",
			p.auth.Authenticate(stepCtx, s, inv.IssuerCUIT.String()))

	case StateNavigating:
		return p.wrap(portal.StepNavigate, "navigation to invoice generator failed",
			p.ops.NavigateToGenerator(stepCtx, s))

	case StateSelectingType:
		return p.wrap(portal.StepSelectType, "invoice type selection failed",
			p.ops.SelectInvoiceType(stepCtx, s, typeSelection(inv)))

	case StateFillingIssuance:
		return p.wrap(portal.StepIssuanceData, "issuance data form filling failed",
			p.ops.FillIssuanceData(stepCtx, s, issuanceForm(inv)))

	case StateFillingRecipient:
		return p.wrap(portal.StepRecipientData, "recipient form filling failed",
			p.ops.FillRecipientData(stepCtx, s, recipientForm(inv)))

	case StateFillingContent:
		return p.wrap(portal.StepLineItems, "invoice content form filling failed",
			p.ops.FillLineItems(stepCtx, s, contentForm(inv)))

	case StateConfirming:
		return p.confirm(stepCtx, s, inv, result)

	default:
		return model.NewStepError(state.String(), "unexpected pipeline state", nil)
	}
}

func (p *Pipeline) wrap(step, message string, err error) error {
	if err == nil {
		return nil
	}
	return model.NewStepError(step, message, err)
}

// confirm runs the confirmation step and sorts its three sub-outcomes:
// a generated document, a categorized business rejection, or an
// unrecognized failure
func (p *Pipeline) confirm(ctx context.Context, s portal.Session, inv *model.Invoice, result *model.ProcessingResult) error {
	outcome, err := p.ops.Confirm(ctx, s, portal.ConfirmRequest{IssuerCUIT: inv.IssuerCUIT.String()})
	if err != nil {
		if rejection, ok := err.(*model.BusinessRejection); ok {
			return rejection
		}
		return model.NewStepError(portal.StepConfirm, "invoice generation failed", err)
	}
	if outcome == nil || outcome.DocumentID == "" {
		return model.NewStepError(portal.StepConfirm, "could not determine invoice generation status", nil)
	}

	if p.verifyPDF && len(outcome.PDF) > 0 {
		if err := document.Verify(outcome.PDF); err != nil {
			return model.NewStepError(portal.StepConfirm, "downloaded document failed verification", err)
		}
	}

	if p.downloadDir != "" && len(outcome.PDF) > 0 {
		path, err := p.saveDownload(inv, outcome)
		if err != nil {
			return model.NewStepError(portal.StepConfirm, "could not save downloaded document", err)
		}
		result.File = path
	}

	result.DocumentID = outcome.DocumentID
	return nil
}

// saveDownload files the PDF under a per-issuer directory so that runs
// mixing several taxpayers never collide on filenames
func (p *Pipeline) saveDownload(inv *model.Invoice, outcome *portal.ConfirmResult) (string, error) {
	dir := filepath.Join(p.downloadDir, inv.IssuerCUIT.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := outcome.Filename
	if name == "" {
		name = outcome.DocumentID + ".pdf"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, outcome.PDF, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func typeSelection(inv *model.Invoice) portal.TypeSelection {
	return portal.TypeSelection{
		SalesPoint:  inv.TypeInfo.SalesPoint.String(),
		InvoiceType: int(inv.TypeInfo.Code),
		Description: inv.TypeInfo.Description,
	}
}

func issuanceForm(inv *model.Invoice) portal.IssuanceForm {
	form := portal.IssuanceForm{
		IssuanceDate: inv.Issuance.Date.Format(),
		ConceptType:  int(inv.Issuance.Concept),
	}
	if period := inv.Issuance.Period; period != nil {
		form.PeriodStart = period.Start.Format()
		form.PeriodEnd = period.End.Format()
		form.PaymentDue = period.PaymentDue.Format()
	}
	return form
}

func recipientForm(inv *model.Invoice) portal.RecipientForm {
	methods := make([]int, 0, len(inv.Payment.Methods))
	for _, m := range inv.Payment.Methods {
		methods = append(methods, int(m))
	}
	return portal.RecipientForm{
		VatCondition:     int(inv.Recipient.Condition),
		RecipientCUIT:    inv.Recipient.CUIT.String(),
		PaymentMethods:   methods,
		RequiresCardData: inv.Payment.RequiresCardData(),
	}
}

func contentForm(inv *model.Invoice) portal.ContentForm {
	return portal.ContentForm{
		ServiceCode: inv.Line.Code.String(),
		Description: inv.Line.Description,
		UnitPrice:   inv.Line.UnitPrice.String(),
		Discount:    inv.Line.Discount.String(),
		VatRate:     int(inv.Line.Rate),
	}
}

package afiplib

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/portal"
	"github.com/rezonia/afip-submitter/internal/runner"
	"github.com/rezonia/afip-submitter/internal/scheduler"
)

// Portal collaborator interfaces. Implementations drive a real browser
// session; NewSimulator returns an in-memory stand-in.
type (
	Session         = portal.Session
	SessionProvider = portal.SessionProvider
	Authenticator   = portal.Authenticator
	StepOperations  = portal.StepOperations
)

// NewSimulator returns an in-memory portal implementation suitable for
// tests and dry runs
func NewSimulator() *portal.Simulator {
	return portal.NewSimulator()
}

// SubmitterOptions configures batch submission behavior
type SubmitterOptions struct {
	// MaxConcurrent bounds how many invoices run at once; an issuer never
	// appears twice in the same batch regardless (default: 4)
	MaxConcurrent int

	// BatchDelay is the pause between consecutive batches (default: 2s)
	BatchDelay time.Duration

	// StepTimeout bounds each wizard step's external waits (default: 30s)
	StepTimeout time.Duration

	// DownloadDir files each downloaded PDF under <dir>/<issuer CUIT>/;
	// empty disables saving
	DownloadDir string

	// VerifyDownloads enables structural validation of downloaded PDFs
	// (default: true)
	VerifyDownloads bool

	// Logger receives structured progress events
	Logger zerolog.Logger
}

// DefaultSubmitterOptions returns the default submission options
func DefaultSubmitterOptions() SubmitterOptions {
	return SubmitterOptions{
		MaxConcurrent:   4,
		BatchDelay:      2 * time.Second,
		StepTimeout:     30 * time.Second,
		VerifyDownloads: true,
		Logger:          zerolog.Nop(),
	}
}

// Submitter schedules and runs invoice record sets against a portal
type Submitter struct {
	runner  *runner.Runner
	options SubmitterOptions
}

// NewSubmitter creates a submitter around the portal collaborators
func NewSubmitter(provider SessionProvider, auth Authenticator, ops StepOperations, opts ...SubmitterOptions) *Submitter {
	options := DefaultSubmitterOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.MaxConcurrent < 1 {
		options.MaxConcurrent = 1
	}

	p := pipeline.New(provider, auth, ops,
		pipeline.WithStepTimeout(options.StepTimeout),
		pipeline.WithDownloadVerification(options.VerifyDownloads),
		pipeline.WithDownloadDir(options.DownloadDir),
		pipeline.WithLogger(options.Logger),
	)

	return &Submitter{
		runner: runner.New(p,
			runner.WithDelay(options.BatchDelay),
			runner.WithLogger(options.Logger),
		),
		options: options,
	}
}

// Submit validates, schedules and submits every request in the set. One
// result is returned per request, in input order; per-invoice failures are
// reported in the results, not as an error.
func (s *Submitter) Submit(ctx context.Context, requests []*InvoiceRequest) ([]ProcessingResult, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	batches := scheduler.Schedule(requests, s.options.MaxConcurrent)
	return s.runner.RunAll(ctx, batches), nil
}

// ValidateAll checks every request offline, without opening any session.
// The returned slice has one entry per request; nil means valid.
func (s *Submitter) ValidateAll(requests []*InvoiceRequest) []error {
	now := time.Now()
	errs := make([]error, len(requests))
	for i, req := range requests {
		_, errs[i] = req.Validate(now)
	}
	return errs
}

// Plan returns the issuer grouping the submitter would use, one slice of
// requests per batch, without submitting anything
func (s *Submitter) Plan(requests []*InvoiceRequest) [][]*InvoiceRequest {
	batches := scheduler.Schedule(requests, s.options.MaxConcurrent)
	plan := make([][]*InvoiceRequest, len(batches))
	for i, b := range batches {
		plan[i] = []*model.InvoiceRequest(b)
	}
	return plan
}

// Summarize aggregates results into totals
func Summarize(results []ProcessingResult) (total, succeeded, failed int) {
	report := runner.Summarize(results)
	return report.Total, report.Succeeded, report.Failed
}

// Package runner executes scheduled batches: one concurrent pipeline run
// per request within a batch, batches strictly in sequence with a
// configurable pause in between.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/scheduler"
)

// Runner fans one batch out over concurrent pipeline runs and aggregates
// results in request order
type Runner struct {
	pipeline *pipeline.Pipeline
	delay    time.Duration
	log      zerolog.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithDelay sets the pause between batches
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.delay = d
	}
}

// WithLogger sets the runner logger
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// New creates a batch runner
func New(p *pipeline.Pipeline, opts ...Option) *Runner {
	r := &Runner{
		pipeline: p,
		delay:    2 * time.Second,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll processes every batch in order and returns one result per
// request, in the scheduler's traversal order regardless of completion
// order. A failing request never affects its siblings; each run owns its
// session exclusively.
func (r *Runner) RunAll(ctx context.Context, batches []scheduler.Batch) []model.ProcessingResult {
	var results []model.ProcessingResult

	for i, batch := range batches {
		r.log.Info().
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("size", len(batch)).
			Strs("issuers", batch.Issuers()).
			Msg("processing batch")

		results = append(results, r.runBatch(ctx, batch)...)

		if i < len(batches)-1 && r.delay > 0 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				// remaining requests are reported, not silently dropped
				for _, req := range scheduler.Flatten(batches[i+1:]) {
					results = append(results, canceledResult(req, ctx.Err()))
				}
				return results
			}
		}
	}
	return results
}

// runBatch launches one pipeline run per request and collects results in
// per-request order once all runs have finished
func (r *Runner) runBatch(ctx context.Context, batch scheduler.Batch) []model.ProcessingResult {
	results := make([]model.ProcessingResult, len(batch))

	var wg sync.WaitGroup
	for i, req := range batch {
		wg.Add(1)
		go func(idx int, req *model.InvoiceRequest) {
			defer wg.Done()
			results[idx] = r.pipeline.Process(ctx, req)
		}(i, req)
	}
	wg.Wait()

	return results
}

func canceledResult(req *model.InvoiceRequest, err error) model.ProcessingResult {
	return model.ProcessingResult{
		IssuerCUIT:  req.IssuerKey(),
		InvoiceType: req.Invoice.Type,
		Status:      model.StatusFailed,
		Error:       "run canceled: " + err.Error(),
	}
}

// Report summarizes an aggregated result list
type Report struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts outcomes in a result list
func Summarize(results []model.ProcessingResult) Report {
	report := Report{Total: len(results)}
	for _, res := range results {
		if res.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

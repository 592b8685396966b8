package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/portal"
	"github.com/rezonia/afip-submitter/internal/runner"
	"github.com/rezonia/afip-submitter/internal/scheduler"
)

const (
	cuitA = "20111111112"
	cuitB = "20222222223"
	cuitC = "20333333334"
)

func validRequest(cuit string) *model.InvoiceRequest {
	req := &model.InvoiceRequest{}
	req.Issuer.CUIT = cuit
	req.Issuer.Type = "MONOTRIBUTO"
	req.Recipient.IVACondition = "CONSUMIDOR_FINAL"
	req.Invoice.Type = "FACTURA_C"
	req.Invoice.PuntoVenta = "3"
	req.Invoice.IssuanceDate = time.Now().Format(model.DateLayout)
	req.Invoice.ConceptType = "PRODUCTOS"
	req.Invoice.Payment.Methods = []string{"CONTADO"}
	req.Invoice.Items.Code = "123"
	req.Invoice.Items.Concept = "venta de productos"
	req.Invoice.Items.UnitPrice = "1500.50"
	return req
}

func requests(cuits ...string) []*model.InvoiceRequest {
	out := make([]*model.InvoiceRequest, len(cuits))
	for i, c := range cuits {
		out[i] = validRequest(c)
	}
	return out
}

func newRunner(sim *portal.Simulator) *runner.Runner {
	p := pipeline.New(sim, sim, sim)
	return runner.New(p, runner.WithDelay(0))
}

func TestRunAll_AllSucceed(t *testing.T) {
	sim := portal.NewSimulator()
	r := newRunner(sim)

	input := requests(cuitA, cuitA, cuitB, cuitC, cuitB)
	batches := scheduler.Schedule(input, 2)
	results := r.RunAll(context.Background(), batches)

	require.Len(t, results, 5)
	for _, res := range results {
		assert.True(t, res.Succeeded(), "issuer %s: %s", res.IssuerCUIT, res.Error)
	}

	report := runner.Summarize(results)
	assert.Equal(t, runner.Report{Total: 5, Succeeded: 5, Failed: 0}, report)

	// every session was handed back and no issuer ever had two at once
	assert.Equal(t, 5, sim.AcquireCount())
	assert.Equal(t, 5, sim.ReleaseCount())
	assert.Equal(t, 0, sim.OpenSessions())
	assert.Empty(t, sim.IssuerConflicts())
}

func TestRunAll_ResultsFollowScheduleOrder(t *testing.T) {
	sim := portal.NewSimulator()
	r := newRunner(sim)

	batches := scheduler.Schedule(requests(cuitA, cuitA, cuitB, cuitC, cuitB), 2)
	results := r.RunAll(context.Background(), batches)

	var issuers []string
	for _, res := range results {
		issuers = append(issuers, res.IssuerCUIT)
	}
	assert.Equal(t, []string{cuitA, cuitB, cuitA, cuitC, cuitB}, issuers)
}

func TestRunAll_FailureDoesNotAffectSiblings(t *testing.T) {
	sim := portal.NewSimulator()
	sim.FailStepFor(portal.StepIssuanceData, cuitB, "form did not load")
	r := newRunner(sim)

	batches := scheduler.Schedule(requests(cuitA, cuitB, cuitC), 3)
	results := r.RunAll(context.Background(), batches)

	require.Len(t, results, 3)
	byIssuer := make(map[string]model.ProcessingResult, 3)
	for _, res := range results {
		byIssuer[res.IssuerCUIT] = res
	}

	assert.True(t, byIssuer[cuitA].Succeeded())
	assert.True(t, byIssuer[cuitC].Succeeded())
	assert.False(t, byIssuer[cuitB].Succeeded())
	assert.Contains(t, byIssuer[cuitB].Error, "form did not load")

	report := runner.Summarize(results)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
}

func TestRunAll_SessionFailureReportedPerInvoice(t *testing.T) {
	sim := portal.NewSimulator()
	sim.FailAcquire()
	r := newRunner(sim)

	batches := scheduler.Schedule(requests(cuitA, cuitB), 2)
	results := r.RunAll(context.Background(), batches)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Succeeded())
		assert.Contains(t, res.Error, "could not acquire session")
	}
}

func TestRunAll_CancellationReportsRemaining(t *testing.T) {
	sim := portal.NewSimulator()
	p := pipeline.New(sim, sim, sim)
	r := runner.New(p, runner.WithDelay(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batches := scheduler.Schedule(requests(cuitA, cuitA, cuitA), 1)
	results := r.RunAll(ctx, batches)

	// nothing dropped: one result per request even after cancellation
	require.Len(t, results, 3)
	assert.Contains(t, results[1].Error, "run canceled")
	assert.Contains(t, results[2].Error, "run canceled")
}

func TestRunAll_Empty(t *testing.T) {
	sim := portal.NewSimulator()
	r := newRunner(sim)
	assert.Empty(t, r.RunAll(context.Background(), nil))
}

func TestSummarize(t *testing.T) {
	results := []model.ProcessingResult{
		{Status: model.StatusSuccess},
		{Status: model.StatusFailed},
		{Status: model.StatusSuccess},
	}
	assert.Equal(t, runner.Report{Total: 3, Succeeded: 2, Failed: 1}, runner.Summarize(results))
	assert.Equal(t, runner.Report{}, runner.Summarize(nil))
}

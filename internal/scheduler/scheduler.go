// Package scheduler partitions invoice requests into batches such that no
// batch holds two requests for the same issuer. The portal corrupts its
// wizard state when a taxpayer has two live sessions, so same-issuer
// requests must run in different, strictly sequential batches.
package scheduler

import "github.com/rezonia/afip-submitter/internal/model"

// Batch is an ordered set of requests safe to run concurrently: issuer
// CUITs within a batch are pairwise distinct
type Batch []*model.InvoiceRequest

// Issuers returns the issuer keys of the batch in request order
func (b Batch) Issuers() []string {
	keys := make([]string, 0, len(b))
	for _, req := range b {
		keys = append(keys, req.IssuerKey())
	}
	return keys
}

// Schedule partitions requests into ordered batches of at most
// maxBatchSize. Each pass scans the not-yet-consumed requests in input
// order and takes the first request of every issuer not already in the
// batch, so batch composition follows first-seen issuer order. Every
// request lands in exactly one batch.
func Schedule(requests []*model.InvoiceRequest, maxBatchSize int) []Batch {
	if maxBatchSize < 1 {
		maxBatchSize = 1
	}

	remaining := append([]*model.InvoiceRequest(nil), requests...)
	var batches []Batch

	for len(remaining) > 0 {
		batch := make(Batch, 0, maxBatchSize)
		used := make(map[string]bool, maxBatchSize)
		var next []*model.InvoiceRequest

		for _, req := range remaining {
			key := req.IssuerKey()
			if len(batch) < maxBatchSize && !used[key] {
				batch = append(batch, req)
				used[key] = true
				continue
			}
			next = append(next, req)
		}

		batches = append(batches, batch)
		remaining = next
	}
	return batches
}

// Flatten returns the requests of all batches in traversal order, which is
// also the order the runner reports results in
func Flatten(batches []Batch) []*model.InvoiceRequest {
	var requests []*model.InvoiceRequest
	for _, batch := range batches {
		requests = append(requests, batch...)
	}
	return requests
}

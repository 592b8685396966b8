package portal

import (
	"context"
	"fmt"
	"sync"

	"github.com/rezonia/afip-submitter/internal/document"
)

// Step names used for failure injection and step error reporting
const (
	StepAuthenticate  = "authenticate"
	StepNavigate      = "navigate"
	StepSelectType    = "select_type"
	StepIssuanceData  = "issuance_data"
	StepRecipientData = "recipient_data"
	StepLineItems     = "line_items"
	StepConfirm       = "confirm"
)

// Simulator is an in-memory portal standing in for the browser-automation
// layer. It implements SessionProvider, Authenticator and StepOperations,
// and is used by the test suites and dry runs. Failures are injected per
// step, optionally per issuer CUIT.
type Simulator struct {
	mu sync.Mutex

	nextSession int
	nextDocID   int

	sessionLimit int  // 0 means unlimited
	acquireFail  bool // every Acquire fails

	active      map[string]bool   // session id -> open
	sessionCUIT map[string]string // session id -> authenticated CUIT

	failures  map[string]string // failure key -> message
	rejection string            // confirm banner message, classified by marker

	stepCalls map[string]int // step name -> times invoked

	acquired  int
	released  int
	conflicts []string // CUITs observed in two live sessions at once
}

// NewSimulator creates a simulator that lets every submission succeed
func NewSimulator() *Simulator {
	return &Simulator{
		nextDocID:   91000000,
		active:      make(map[string]bool),
		sessionCUIT: make(map[string]string),
		failures:    make(map[string]string),
		stepCalls:   make(map[string]int),
	}
}

// SetSessionLimit caps concurrently open sessions; Acquire fails beyond it
func (s *Simulator) SetSessionLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionLimit = n
}

// FailAcquire makes every session acquisition fail
func (s *Simulator) FailAcquire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquireFail = true
}

// FailStep injects a failure for a step across all issuers
func (s *Simulator) FailStep(step, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[step] = message
}

// FailStepFor injects a failure for a step, for one issuer only
func (s *Simulator) FailStepFor(step, cuit, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[step+":"+cuit] = message
}

// RejectConfirmation makes the confirmation step fail with the given portal
// banner message; include one of the portal markers to get a categorized
// rejection
func (s *Simulator) RejectConfirmation(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejection = message
}

// AcquireCount returns how many sessions were handed out
func (s *Simulator) AcquireCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired
}

// ReleaseCount returns how many sessions were released
func (s *Simulator) ReleaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// OpenSessions returns how many sessions are currently open
func (s *Simulator) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// StepCalls returns how many times a step operation was invoked,
// failed attempts included
func (s *Simulator) StepCalls(step string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepCalls[step]
}

// IssuerConflicts returns the CUITs that were ever authenticated on two
// live sessions at the same time. Anything here means the scheduler's
// same-issuer guarantee was broken.
func (s *Simulator) IssuerConflicts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.conflicts...)
}

type simSession struct {
	id  string
	sim *Simulator
}

func (ss *simSession) ID() string { return ss.id }

func (ss *simSession) Close() error {
	ss.sim.mu.Lock()
	defer ss.sim.mu.Unlock()
	delete(ss.sim.active, ss.id)
	delete(ss.sim.sessionCUIT, ss.id)
	return nil
}

// Acquire implements SessionProvider
func (s *Simulator) Acquire(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquireFail {
		return nil, fmt.Errorf("browser setup failed")
	}
	if s.sessionLimit > 0 && len(s.active) >= s.sessionLimit {
		return nil, fmt.Errorf("session limit reached (%d open)", s.sessionLimit)
	}
	s.nextSession++
	s.acquired++
	id := fmt.Sprintf("sim-%d", s.nextSession)
	s.active[id] = true
	return &simSession{id: id, sim: s}, nil
}

// Release implements SessionProvider
func (s *Simulator) Release(sess Session) {
	if sess == nil {
		return
	}
	_ = sess.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released++
}

// Authenticate implements Authenticator
func (s *Simulator) Authenticate(ctx context.Context, sess Session, cuit string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepCalls[StepAuthenticate]++
	if msg := s.failureLocked(StepAuthenticate, cuit); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	for id, other := range s.sessionCUIT {
		if other == cuit && id != sess.ID() {
			s.conflicts = append(s.conflicts, cuit)
		}
	}
	s.sessionCUIT[sess.ID()] = cuit
	return nil
}

// NavigateToGenerator implements StepOperations
func (s *Simulator) NavigateToGenerator(ctx context.Context, sess Session) error {
	return s.stepResult(ctx, sess, StepNavigate)
}

// SelectInvoiceType implements StepOperations
func (s *Simulator) SelectInvoiceType(ctx context.Context, sess Session, sel TypeSelection) error {
	return s.stepResult(ctx, sess, StepSelectType)
}

// FillIssuanceData implements StepOperations
func (s *Simulator) FillIssuanceData(ctx context.Context, sess Session, form IssuanceForm) error {
	return s.stepResult(ctx, sess, StepIssuanceData)
}

// FillRecipientData implements StepOperations
func (s *Simulator) FillRecipientData(ctx context.Context, sess Session, form RecipientForm) error {
	return s.stepResult(ctx, sess, StepRecipientData)
}

// FillLineItems implements StepOperations
func (s *Simulator) FillLineItems(ctx context.Context, sess Session, form ContentForm) error {
	return s.stepResult(ctx, sess, StepLineItems)
}

// Confirm implements StepOperations
func (s *Simulator) Confirm(ctx context.Context, sess Session, req ConfirmRequest) (*ConfirmResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepCalls[StepConfirm]++
	if msg := s.failureLocked(StepConfirm, req.IssuerCUIT); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}
	if s.rejection != "" {
		return nil, ClassifyRejection(s.rejection)
	}
	s.nextDocID++
	id := fmt.Sprintf("%d", s.nextDocID)
	return &ConfirmResult{
		DocumentID: id,
		Filename:   fmt.Sprintf("%s_%s.pdf", req.IssuerCUIT, id),
		PDF:        document.PlaceholderPDF(),
	}, nil
}

func (s *Simulator) stepResult(ctx context.Context, sess Session, step string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepCalls[step]++
	if msg := s.failureLocked(step, s.sessionCUIT[sess.ID()]); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (s *Simulator) failureLocked(step, cuit string) string {
	if msg, ok := s.failures[step+":"+cuit]; ok {
		return msg
	}
	return s.failures[step]
}

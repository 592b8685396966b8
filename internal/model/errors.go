package model

import "fmt"

// ValidationError represents a business-rule or format violation detected
// before any portal interaction
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// SessionError represents a failure to acquire or keep a portal session
type SessionError struct {
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session error: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("session error: %s", e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// NewSessionError creates a new session error
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		Message: message,
		Cause:   cause,
	}
}

// StepError represents a failed submission step with step context
type StepError struct {
	Step    string
	Message string
	Cause   error
}

func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// NewStepError creates a new step error
func NewStepError(step, message string, cause error) *StepError {
	return &StepError{
		Step:    step,
		Message: message,
		Cause:   cause,
	}
}

// RejectionCategory classifies the document-generation errors the portal
// reports on the confirmation page
type RejectionCategory string

const (
	RejectionPDFRender         RejectionCategory = "pdf_render"
	RejectionAuthorizationCode RejectionCategory = "authorization_code"
	RejectionSupplementaryData RejectionCategory = "supplementary_data"
	RejectionUnknown           RejectionCategory = "unknown"
)

// BusinessRejection represents a categorized document-generation error
// reported by the portal at the confirmation step
type BusinessRejection struct {
	Category RejectionCategory
	Message  string
}

func (e *BusinessRejection) Error() string {
	return e.Message
}

// NewBusinessRejection creates a new business rejection
func NewBusinessRejection(category RejectionCategory, message string) *BusinessRejection {
	return &BusinessRejection{
		Category: category,
		Message:  message,
	}
}

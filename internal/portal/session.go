// Package portal defines the boundary to the browser-automation layer: the
// session lifecycle, the authenticator and the six form-filling operations
// the submission pipeline drives. Implementations own every page-level
// concern; the pipeline only ever sees validated inputs and step outcomes.
package portal

import "context"

// Session is one isolated browser context. A session is owned by exactly
// one pipeline run; no state crosses session boundaries.
type Session interface {
	// ID identifies the session in logs
	ID() string
	// Close tears down the underlying context. Idempotent.
	Close() error
}

// SessionProvider hands out sessions under a scoped-acquisition contract:
// every acquired session must be released on all exit paths before the
// owning task reports its result.
type SessionProvider interface {
	Acquire(ctx context.Context) (Session, error)
	Release(s Session)
}

// Authenticator performs the per-taxpayer portal login on a session
type Authenticator interface {
	Authenticate(ctx context.Context, s Session, cuit string) error
}

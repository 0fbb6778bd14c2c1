package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes and verifies user passwords. The production
// implementation is bcrypt; tests substitute a cheap fake.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.PasswordHasher = FakeHasher{}
	_ core.UserRepository  = (*MemoryUserRepo)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr, when set, is returned by Save to simulate store failures.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// MemoryUserRepo is an in-memory user repository for unit tests. It keeps
// the same error contract as the Postgres implementation: Conflict on
// duplicate email, NotFound on miss.
type MemoryUserRepo struct {
	mu      sync.Mutex
	byID    map[string]model.User
	byEmail map[string]string
}

// NewMemoryUserRepo creates a new in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryUserRepo) Create(_ context.Context, params core.CreateUserParams) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := model.NormalizeEmail(params.Email)
	if _, exists := m.byEmail[email]; exists {
		return nil, apperrors.ConflictField("email", "This value already exists. Please choose a different one.")
	}

	u := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: params.PasswordHash,
	}
	m.byID[u.ID] = u
	m.byEmail[email] = u.ID
	return &u, nil
}

func (m *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	u := m.byID[id]
	return &u, nil
}

func (m *MemoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return &u, nil
}

// FakeHasher is a transparent password hasher for tests: the "hash" is the
// password with a fixed prefix, and comparison is plain string equality.
type FakeHasher struct{}

func (FakeHasher) Hash(password string) (string, error) {
	return "fake$" + password, nil
}

func (FakeHasher) Compare(hash, password string) error {
	if hash != "fake$"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

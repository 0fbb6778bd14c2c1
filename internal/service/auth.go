package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/ports"
)

// ErrInvalidCredentials is the single failure returned for any logon
// problem. Unknown email and wrong password are deliberately
// indistinguishable so the form cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

var errSessionExpired = errors.New("session expired")

// dummyPasswordHash is compared against when the account does not exist.
// The result is discarded; it only equalizes the cost of the two logon
// failure paths. bcrypt hash of a throwaway value, never a real password.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4aC1mZZt4skpqQJiYvlmBEPtjZ2"

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      core.UserRepository
	Sessions   ports.SessionStore
	Hasher     ports.PasswordHasher
	SessionTTL time.Duration
}

// AuthService orchestrates registration, credential checks, and the session
// lifecycle (create, rotate on login, destroy on logoff).
type AuthService struct {
	users      core.UserRepository
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		users:      opts.Users,
		sessions:   opts.Sessions,
		hasher:     opts.Hasher,
		sessionTTL: ttl,
	}
}

// SessionTTL returns the configured inactivity window.
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// NewAnonymousSession creates and persists a session with no identity.
// Anonymous sessions carry a CSRF secret from birth so pre-login forms are
// protected.
func (s *AuthService) NewAnonymousSession(ctx context.Context) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:         uuid.NewString(),
		CSRFSecret: newCSRFSecret(),
		ExpiresAt:  time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Register validates the request, hashes the password, and creates the
// account. A duplicate email comes back as a Conflict error attributed to
// the email field. The caller is expected to establish a session
// immediately so registration doubles as the first login.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("register request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.ConflictField("email", "An account with that email already exists.")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and returns the account. Every failure
// path, including a missing account, costs one ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	req := model.LogonRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Burn a compare so an unknown email costs the same as a
			// wrong password.
			_ = s.hasher.Compare(dummyPasswordHash, req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if compareErr := s.hasher.Compare(user.PasswordHash, req.Password); compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EstablishSession replaces prev with a fresh authenticated session. Both
// the session ID and the CSRF secret rotate, so cookies and tokens issued
// before login are worthless afterwards. The previous record is deleted
// best-effort; its Redis TTL reaps it regardless.
func (s *AuthService) EstablishSession(
	ctx context.Context,
	prev domainauth.Session,
	user *model.User,
) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		CSRFSecret: newCSRFSecret(),
		ExpiresAt:  time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	if prev.ID != "" && prev.ID != sess.ID {
		_ = s.sessions.Delete(ctx, prev.ID)
	}
	return sess, nil
}

// GetSession retrieves a session by ID, deleting it when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// SaveSession persists in-place changes (flashes, ReturnTo). When less than
// half the inactivity window remains it also slides the expiry forward, so
// active users are not logged out mid-visit.
func (s *AuthService) SaveSession(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil || sess.ID == "" {
		return errors.New("session is required")
	}
	if time.Until(sess.ExpiresAt) < s.sessionTTL/2 {
		sess.ExpiresAt = time.Now().Add(s.sessionTTL)
	}
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// newCSRFSecret creates the per-session HMAC key. 32 random bytes,
// base64url without padding.
func newCSRFSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process cannot do anything
		// security-relevant; uuid keeps sessions functional in tests.
		return uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

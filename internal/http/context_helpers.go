package httpx

import (
	"context"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// sessionHolder carries the request's session through the middleware chain.
// Handlers that rotate the session (login, logoff) swap the pointer so the
// session manager persists the replacement, not the record it loaded.
type sessionHolder struct {
	sess *domainauth.Session
}

// setSessionHolderInContext returns a child context carrying the holder.
func setSessionHolderInContext(ctx context.Context, holder *sessionHolder) context.Context {
	return context.WithValue(ctx, sessionKey{}, holder)
}

// GetUserSessionFromContext returns the session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if holder, ok := ctx.Value(sessionKey{}).(*sessionHolder); ok && holder.sess != nil {
		return holder.sess, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// ReplaceSessionInContext swaps the session carried by the request context.
// Returns false when no session holder is present (session manager not run).
func ReplaceSessionInContext(ctx context.Context, sess *domainauth.Session) bool {
	holder, ok := ctx.Value(sessionKey{}).(*sessionHolder)
	if !ok {
		return false
	}
	holder.sess = sess
	return true
}

// IsAuthenticated reports whether the current request carries a session
// bound to a user.
func IsAuthenticated(ctx context.Context) bool {
	s, ok := GetUserSessionFromContext(ctx)
	return ok && s.IsAuthenticated()
}

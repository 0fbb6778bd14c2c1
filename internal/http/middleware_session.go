package httpx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
)

// AuthService defines the auth service operations the HTTP layer depends on.
type AuthService interface {
	NewAnonymousSession(ctx context.Context) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	SaveSession(ctx context.Context, sess *domainauth.Session) error
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	EstablishSession(ctx context.Context, prev domainauth.Session, user *model.User) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	SessionTTL() time.Duration
}

// SessionCookies writes and clears the signed browser session cookie.
// The cookie value is the session ID plus an HMAC-SHA256 signature keyed by
// a process-wide secret, so a forged or tampered ID never reaches the store.
type SessionCookies struct {
	Name          string
	Domain        string
	Secure        bool
	SigningSecret string
}

// Write sets the signed session cookie for the given session.
func (c SessionCookies) Write(w http.ResponseWriter, sess *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    signSessionID(sess.ID, c.SigningSecret),
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
	})
}

// Clear expires the session cookie on the client.
func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// signSessionID produces the cookie value "<id>.<base64url(HMAC-SHA256(secret, id))>".
func signSessionID(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// parseSessionCookie verifies a signed cookie value and returns the session ID.
// Any malformed or tampered value reports false.
func parseSessionCookie(value, secret string) (string, bool) {
	dot := strings.LastIndexByte(value, '.')
	if dot <= 0 || dot == len(value)-1 {
		return "", false
	}
	id := value[:dot]
	sig, err := base64.RawURLEncoding.DecodeString(value[dot+1:])
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", false
	}
	return id, true
}

// SessionManager loads (or creates) the server-side session for every request
// and persists it once the handler chain is done. A missing, forged, or
// expired cookie is never an error: the request proceeds on a fresh anonymous
// session.
type SessionManager struct {
	Auth    AuthService
	Cookies SessionCookies
	Logger  *slog.Logger
}

func (m *SessionManager) logger() *slog.Logger {
	if m != nil && m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Middleware returns the session manager middleware.
func (m *SessionManager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.loadSession(r)
			if sess == nil {
				fresh, err := m.Auth.NewAnonymousSession(r.Context())
				if err != nil {
					m.logger().ErrorContext(r.Context(), "creating session failed", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				sess = &fresh
				m.Cookies.Write(w, sess)
			}

			holder := &sessionHolder{sess: sess}
			ctx := setSessionHolderInContext(r.Context(), holder)
			next.ServeHTTP(w, r.WithContext(ctx))

			// Persist whatever session the handlers left behind: flash
			// queues, ReturnTo, and the TTL slide all ride on this save.
			if holder.sess != nil {
				if err := m.Auth.SaveSession(r.Context(), holder.sess); err != nil {
					m.logger().WarnContext(r.Context(), "saving session failed",
						"session_id", holder.sess.ID, "error", err)
				}
			}
		})
	}
}

// loadSession returns the session referenced by a validly signed cookie, or
// nil when there is none.
func (m *SessionManager) loadSession(r *http.Request) *domainauth.Session {
	cookie, err := r.Cookie(m.Cookies.Name)
	if err != nil {
		return nil
	}
	id, ok := parseSessionCookie(cookie.Value, m.Cookies.SigningSecret)
	if !ok {
		return nil
	}
	sess, err := m.Auth.GetSession(r.Context(), id)
	if err != nil {
		return nil
	}
	return sess
}

// RequireAuth returns a middleware that requires an authenticated session.
// Unauthenticated requests remember where they were headed on the anonymous
// session and are redirected to the logon form; the protected handler never
// runs.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			if sess == nil || !sess.IsAuthenticated() {
				if sess != nil {
					sess.ReturnTo = safeRedirectPath(r.URL.RequestURI())
					sess.AddFlash(domainauth.FlashError, "You must be logged on to access that page.")
				}
				http.Redirect(w, r, "/sessions/logon", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

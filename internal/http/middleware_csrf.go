package httpx

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	// CSRFFormField is the form field carrying the CSRF token.
	CSRFFormField = "csrf_token"

	// csrfNonceLength is the length of the random nonce prefixing each token.
	csrfNonceLength = 16
)

// CSRFProtection returns a middleware that protects state-changing requests.
//
// Tokens are derived from the per-session secret rather than stored: a token
// is base64url(nonce || HMAC-SHA256(secret, nonce)), re-derived fresh for
// every render and exposed to templates through the request context.
// Validation recomputes the MAC from the submitted nonce, so a token minted
// under a different session's secret (or before a login rotated the secret)
// fails without any server-side token bookkeeping.
//
// GET, HEAD, OPTIONS, and TRACE requests are exempt from validation.
func CSRFProtection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			if sess == nil {
				// Session manager did not run; fail closed for mutations.
				if requiresCSRFValidation(r.Method) {
					http.Error(w, "CSRF token validation failed", http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if requiresCSRFValidation(r.Method) {
				if !validateCSRFToken(r, sess.CSRFSecret) {
					http.Error(w, "CSRF token validation failed", http.StatusForbidden)
					return
				}
			}

			token, err := IssueCSRFToken(sess.CSRFSecret)
			if err != nil {
				http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
				return
			}
			ctx := setCSRFTokenInContext(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requiresCSRFValidation returns true if the HTTP method requires CSRF validation.
// Safe methods (GET, HEAD, OPTIONS, TRACE) are exempt.
func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

// IssueCSRFToken derives a fresh token from the session's CSRF secret.
// Returns an error if random generation fails - we fail closed rather than
// falling back to a predictable token.
func IssueCSRFToken(secret string) (string, error) {
	nonce := make([]byte, csrfNonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(nonce)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nonce)), nil
}

// validateCSRFToken checks the csrf_token form field against the session
// secret. The MAC comparison is constant-time.
func validateCSRFToken(r *http.Request, secret string) bool {
	if secret == "" {
		return false
	}

	// Only parse the body for form-encoded content types.
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(contentType, "multipart/form-data") {
		return false
	}
	if err := r.ParseForm(); err != nil {
		return false
	}

	raw, err := base64.RawURLEncoding.DecodeString(r.FormValue(CSRFFormField))
	if err != nil || len(raw) != csrfNonceLength+sha256.Size {
		return false
	}
	nonce, submittedMAC := raw[:csrfNonceLength], raw[csrfNonceLength:]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(nonce)
	return hmac.Equal(submittedMAC, mac.Sum(nil))
}

// csrfTokenKey is an unexported context key type for CSRF token storage.
type csrfTokenKey struct{}

// setCSRFTokenInContext stores the CSRF token in the request context.
func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken retrieves the CSRF token from the request context.
// This is used by templates to include the token in forms.
func GetCSRFToken(r *http.Request) string {
	if val := r.Context().Value(csrfTokenKey{}); val != nil {
		if token, ok := val.(string); ok {
			return token
		}
	}
	return ""
}

package config

import "time"

// minSigningSecretLen is the shortest signing secret accepted outside dev
// mode. HMAC-SHA256 keys shorter than this are not worth having.
const minSigningSecretLen = 32

// SessionConfig contains session cookie and TTL configuration.
type SessionConfig struct {
	// CookieName is the name of the browser session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"session_id"`

	// TTL is the session inactivity window. Every request that touches the
	// session can slide the expiry forward by this much.
	TTL time.Duration `env:"TTL" envDefault:"1h"`

	// SigningSecret keys the HMAC that signs session cookie values.
	// Required in production; a dev-only fallback is generated otherwise.
	SigningSecret string `env:"SIGNING_SECRET"`

	// CookieSecure marks the session cookie Secure. Disabled automatically
	// in dev mode where the app runs over plain HTTP.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize(isDev bool) {
	if s.CookieName == "" {
		s.CookieName = "session_id"
	}
	if s.TTL < time.Minute {
		s.TTL = time.Hour
	}
	if isDev {
		s.CookieSecure = false
		if s.SigningSecret == "" {
			s.SigningSecret = "dev-only-insecure-signing-secret"
		}
	}
}

// Validate reports whether the configuration is usable in production.
func (s *SessionConfig) Validate(isDev bool) error {
	if isDev {
		return nil
	}
	if len(s.SigningSecret) < minSigningSecretLen {
		return errShortSigningSecret
	}
	return nil
}

type signingSecretError struct{}

func (signingSecretError) Error() string {
	return "SESSION_SIGNING_SECRET must be at least 32 bytes in production"
}

var errShortSigningSecret error = signingSecretError{}

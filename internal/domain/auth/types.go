package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// FlashKind classifies a one-shot notification queued on a session.
type FlashKind string

const (
	FlashInfo  FlashKind = "info"
	FlashError FlashKind = "error"
)

// Flash is a notification queued for the next rendered page and then
// discarded. The queue lives on the server-side session record, so a
// message survives exactly one redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Session is the server-side record keyed by the opaque session ID held in
// the browser cookie. Anonymous sessions have an empty UserID but still
// carry a CSRF secret so pre-login forms can be protected.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CSRFSecret string    `json:"csrf_secret"`
	ReturnTo   string    `json:"return_to,omitempty"`
	Flashes    []Flash   `json:"flashes,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session is bound to a user.
func (s Session) IsAuthenticated() bool { return s.UserID != "" }

// AddFlash queues a one-shot notification on the session.
func (s *Session) AddFlash(kind FlashKind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

// TakeFlashes drains the queued notifications, leaving the queue empty.
func (s *Session) TakeFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minUserNameLen = 3
	maxUserNameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
)

// User is a registered account. PasswordHash is the bcrypt hash of the
// password; the clear text is never stored.
type User struct {
	ID           string    `json:"id"             db:"id"`
	Name         string    `json:"name"           db:"name"`
	Email        string    `json:"email"          db:"email"`
	PasswordHash string    `json:"-"              db:"password_hash"`
	CreatedAt    time.Time `json:"created_at"     db:"created_at"`
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique constraint agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest carries the registration form fields. Validate normalizes
// the email in place.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// FieldError attributes a validation failure to a single form field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Validate checks the registration fields and normalizes the email.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &FieldError{Field: "name", Message: "Name is required."}
	}
	if n := utf8.RuneCountInString(r.Name); n < minUserNameLen || n > maxUserNameLen {
		return &FieldError{Field: "name", Message: "Name must be between 3 and 50 characters."}
	}
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" {
		return &FieldError{Field: "email", Message: "Email is required."}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &FieldError{Field: "email", Message: "Please provide a valid email address."}
	}
	if len(r.Password) < minPasswordLen || len(r.Password) > maxPasswordLen {
		return &FieldError{Field: "password", Message: "Password must be between 6 and 72 characters."}
	}
	if r.Password != r.PasswordConfirm {
		return &FieldError{Field: "password_confirm", Message: "The passwords entered do not match."}
	}
	return nil
}

// LogonRequest carries the logon form fields.
type LogonRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials were supplied and normalizes the
// email. It deliberately says nothing about whether the account exists.
func (r *LogonRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

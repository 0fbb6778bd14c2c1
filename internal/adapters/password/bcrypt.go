package password

// Package password provides the production password hasher.

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jobtrack/jobtrack-ui/internal/ports"
)

// BcryptHasher hashes passwords with bcrypt. The zero value uses
// bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

var _ ports.PasswordHasher = BcryptHasher{}

// NewBcryptHasher creates a BcryptHasher with the default cost.
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns nil when password matches hash. bcrypt's comparison is
// constant-time over the hash output.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

package ports_test

import (
	"testing"

	mocks "github.com/jobtrack/jobtrack-ui/internal/mocks/auth"
	"github.com/jobtrack/jobtrack-ui/internal/ports"
)

// This test only verifies that our test doubles conform to the ports at compile time.
func TestDoublesImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.PasswordHasher = mocks.FakeHasher{}
}

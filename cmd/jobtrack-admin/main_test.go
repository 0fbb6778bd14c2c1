package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDBResetFlags(t *testing.T) {
	opts, err := parseDBResetFlags([]string{"-yes", "-seed", "-timeout", "30s"})
	require.NoError(t, err)
	require.True(t, opts.Yes)
	require.True(t, opts.Seed)
	require.False(t, opts.AllowRemote)
	require.Equal(t, 30*time.Second, opts.Timeout)
}

func TestParseDBResetFlagsDefaults(t *testing.T) {
	opts, err := parseDBResetFlags(nil)
	require.NoError(t, err)
	require.False(t, opts.Yes)
	require.False(t, opts.Seed)
	require.Equal(t, defaultMigrationTimeout, opts.Timeout)
}

func TestParseMigrateFlagsRejectsNonPositiveTimeout(t *testing.T) {
	_, err := parseMigrateFlags([]string{"-timeout", "-1s"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "--timeout must be greater than zero")
}

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host   string
		remote bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"dev-box.local", false},
		{"", false},
		{"db.example.com", true},
		{"10.0.0.12", true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.remote, isLikelyRemoteHost(tt.host), "host %q", tt.host)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	require.Equal(t, `"jobtrack"`, quoteIdentifier("jobtrack"))
	require.Equal(t, `"we""ird"`, quoteIdentifier(`we"ird`))
}

func TestDBResetConfirmOptionsRemoteHostForcesPrompt(t *testing.T) {
	opts := dbResetConfirmOptions{yes: true, remoteHost: "db.example.com"}
	require.False(t, opts.IsYes())
	require.Contains(t, opts.GetWarning(), "db.example.com")

	local := dbResetConfirmOptions{yes: true}
	require.True(t, local.IsYes())
}

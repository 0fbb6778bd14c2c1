package httpx

import (
	"context"
	"testing"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
)

func TestSessionContextRoundTrip(t *testing.T) {
	sess := &domainauth.Session{ID: "s1", UserID: "u1"}
	ctx := setSessionHolderInContext(context.Background(), &sessionHolder{sess: sess})

	got, ok := GetUserSessionFromContext(ctx)
	if !ok || got.ID != "s1" {
		t.Fatalf("GetUserSessionFromContext = %v, %v", got, ok)
	}
	if !IsAuthenticated(ctx) {
		t.Error("session with UserID should be authenticated")
	}
}

func TestReplaceSessionInContext(t *testing.T) {
	ctx := setSessionHolderInContext(context.Background(), &sessionHolder{
		sess: &domainauth.Session{ID: "old"},
	})

	replacement := &domainauth.Session{ID: "new", UserID: "u1"}
	if !ReplaceSessionInContext(ctx, replacement) {
		t.Fatal("replace should succeed when a holder is present")
	}
	if got := GetSessionFromContext(ctx); got == nil || got.ID != "new" {
		t.Errorf("GetSessionFromContext = %v, want the replacement", got)
	}
}

func TestSessionContextAbsent(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetUserSessionFromContext(ctx); ok {
		t.Error("empty context should carry no session")
	}
	if IsAuthenticated(ctx) {
		t.Error("empty context should not be authenticated")
	}
	if ReplaceSessionInContext(ctx, &domainauth.Session{ID: "x"}) {
		t.Error("replace should fail without a holder")
	}
}

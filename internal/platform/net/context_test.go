package net_test

import (
	"context"
	"testing"

	"rolegate/internal/core/principal"
	pnet "rolegate/internal/platform/net"

	"github.com/google/uuid"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("empty id returns same ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when id empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}

func TestWithCaller(t *testing.T) {
	base := context.Background()
	if _, _, ok := pnet.Caller(base); ok {
		t.Fatalf("empty ctx should carry no caller")
	}
	if pnet.TenantID(base) != "" || pnet.PrincipalID(base) != "" {
		t.Fatalf("empty ctx getters should be blank")
	}

	org := uuid.New()
	p := principal.Principal{ID: uuid.New(), Role: principal.RoleTechnician}
	a := principal.Account{ID: p.ID, Role: p.Role, OrganizationID: uuid.NullUUID{UUID: org, Valid: true}}
	ctx := pnet.WithCaller(base, p, a)

	gp, ga, ok := pnet.Caller(ctx)
	if !ok || gp.ID != p.ID || ga.ID != a.ID {
		t.Fatalf("Caller mismatch: %+v %+v %v", gp, ga, ok)
	}
	if pnet.TenantID(ctx) != org.String() {
		t.Fatalf("TenantID = %q", pnet.TenantID(ctx))
	}
	if pnet.PrincipalID(ctx) != p.ID.String() {
		t.Fatalf("PrincipalID = %q", pnet.PrincipalID(ctx))
	}

	diary := pnet.WithCaller(base, principal.Principal{ID: uuid.New(), Role: principal.RoleDiaryUser}, principal.Account{})
	if pnet.TenantID(diary) != "" {
		t.Fatalf("diary users carry no tenant")
	}
}

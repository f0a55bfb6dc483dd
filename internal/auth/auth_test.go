package auth

import (
	"context"
	"testing"

	"liquidityEngine/internal/ledger/memory"
)

func TestGrantRevoke(t *testing.T) {
	ctx := context.Background()
	authz := NewAuthorizer(memory.NewStore())

	ok, err := authz.HasRole(ctx, RoleFeeAuthority, "ops")
	if err != nil || ok {
		t.Fatalf("fresh role = %v, %v", ok, err)
	}

	if err := authz.Grant(ctx, RoleFeeAuthority, "ops"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	ok, err = authz.HasRole(ctx, RoleFeeAuthority, "ops")
	if err != nil || !ok {
		t.Fatalf("after grant = %v, %v", ok, err)
	}

	if err := authz.Revoke(ctx, RoleFeeAuthority, "ops"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = authz.HasRole(ctx, RoleFeeAuthority, "ops")
	if err != nil || ok {
		t.Fatalf("after revoke = %v, %v", ok, err)
	}
}

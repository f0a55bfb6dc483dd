// Package auth implements role grants as ledger records. A grant is the
// presence of a role key; revocation deletes it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
)

// RoleFeeAuthority may collect protocol fees from any pool, in addition to
// the per-pool authorities recorded on the pool itself.
const RoleFeeAuthority = "fee-authority"

// DelegateRole names the role that lets its holder collect trading fees on
// behalf of owner.
func DelegateRole(owner string) string {
	return "collect-for:" + owner
}

// Authorizer answers role questions against the ledger.
type Authorizer struct {
	state ledger.Ledger
}

func NewAuthorizer(state ledger.Ledger) *Authorizer {
	return &Authorizer{state: state}
}

// Grant records a role for an account. Granting twice is a no-op.
func (a *Authorizer) Grant(ctx context.Context, role, account string) error {
	if role == "" || account == "" {
		return fmt.Errorf("grant: role and account are required")
	}
	value := []byte(fmt.Sprintf(`{"granted_at":%q}`, time.Now().UTC().Format(time.RFC3339)))
	if err := a.state.Put(ctx, model.RoleKey(role, account), value); err != nil {
		return fmt.Errorf("grant %s to %s: %w", role, account, err)
	}
	return nil
}

// Revoke removes a role from an account. Revoking an absent grant is a
// no-op.
func (a *Authorizer) Revoke(ctx context.Context, role, account string) error {
	if err := a.state.Delete(ctx, model.RoleKey(role, account)); err != nil {
		return fmt.Errorf("revoke %s from %s: %w", role, account, err)
	}
	return nil
}

// HasRole reports whether the account holds the role.
func (a *Authorizer) HasRole(ctx context.Context, role, account string) (bool, error) {
	_, err := a.state.Get(ctx, model.RoleKey(role, account))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check %s for %s: %w", role, account, err)
	}
	return true, nil
}

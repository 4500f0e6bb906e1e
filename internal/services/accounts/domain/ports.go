// Package domain defines the account lookup contract behind principal validation
package domain

import (
	"context"

	"rolegate/internal/core/principal"

	"github.com/google/uuid"
)

// Repo reads the account row a principal maps to
// a missing row is perr.ErrNotFound; retired rows are returned with DeletedAt set
type Repo interface {
	Account(ctx context.Context, role principal.Role, id uuid.UUID) (principal.Account, error)
}

// ValidatorPort confirms a principal still maps to an enrolled account
type ValidatorPort interface {
	Validate(ctx context.Context, p principal.Principal) (principal.Account, error)
}

// TokenPort verifies bearer tokens and revokes them
type TokenPort interface {
	Resolve(ctx context.Context, raw string, want ...principal.Role) (principal.Principal, error)
	Revoke(ctx context.Context, p principal.Principal) error
}

// Tables maps each role to the table its accounts live in
var Tables = map[principal.Role]string{
	principal.RoleDiaryUser:  "diary_users",
	principal.RoleTechnician: "technicians",
	principal.RoleOrgAdmin:   "org_admins",
}

// Package repo provides the accounts repository implementation
package repo

import (
	"context"
	"fmt"
	"time"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit/repokit"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/services/accounts/domain"

	"github.com/google/uuid"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.Repo { return &pg{q: repokit.RequireQueryer(q)} }

// diary users belong to no organization, so their column is a typed null
var columns = map[principal.Role]string{
	principal.RoleDiaryUser:  "id, display_name, NULL::uuid, deleted_at",
	principal.RoleTechnician: "id, display_name, organization_id, deleted_at",
	principal.RoleOrgAdmin:   "id, display_name, organization_id, deleted_at",
}

// Account implements domain.Repo
func (s *pg) Account(ctx context.Context, role principal.Role, id uuid.UUID) (principal.Account, error) {
	table, ok := domain.Tables[role]
	if !ok {
		return principal.Account{}, perr.Authorizationf("unknown role %s", role)
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columns[role], table)

	a := principal.Account{Role: role}
	var deleted *time.Time
	err := s.q.QueryRow(ctx, sql, id).Scan(&a.ID, &a.DisplayName, &a.OrganizationID, &deleted)
	if err != nil {
		if perr.IsNoRows(err) {
			return principal.Account{}, perr.ErrNotFound
		}
		return principal.Account{}, perr.FromPostgresf(err, "load %s account", role)
	}
	a.DeletedAt = deleted
	return a, nil
}

// Package principal defines the authenticated caller and the account it maps to
package principal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of caller kinds a bearer token can carry
type Role uint8

const (
	// RoleUnknown is the zero value and never authorizes anything
	RoleUnknown Role = iota
	// RoleDiaryUser owns diary entries
	RoleDiaryUser
	// RoleTechnician works appointments assigned to them within one organization
	RoleTechnician
	// RoleOrgAdmin manages organization wide resources such as billing codes
	RoleOrgAdmin
)

var roleTags = map[Role]string{
	RoleDiaryUser:  "diaryUser",
	RoleTechnician: "technician",
	RoleOrgAdmin:   "orgAdmin",
}

// String returns the wire tag of the role
func (r Role) String() string {
	if s, ok := roleTags[r]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleTags[r]
	return ok
}

// ParseRole maps a wire tag to a Role; matching is exact after trimming
func ParseRole(tag string) (Role, bool) {
	tag = strings.TrimSpace(tag)
	for r, s := range roleTags {
		if s == tag {
			return r, true
		}
	}
	return RoleUnknown, false
}

// Roles returns every known role in declaration order
func Roles() []Role { return []Role{RoleDiaryUser, RoleTechnician, RoleOrgAdmin} }

// Principal is the decoded identity of one request
type Principal struct {
	ID        uuid.UUID
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// Is reports whether the principal carries any of the given roles
func (p Principal) Is(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Account is the backing row that makes a principal valid
type Account struct {
	ID             uuid.UUID
	Role           Role
	OrganizationID uuid.NullUUID
	DisplayName    string
	DeletedAt      *time.Time
}

// Active reports whether the account has not been retired
func (a Account) Active() bool { return a.DeletedAt == nil }

// TenantID returns the organization the account belongs to, if any
func (a Account) TenantID() (uuid.UUID, bool) {
	if !a.OrganizationID.Valid {
		return uuid.Nil, false
	}
	return a.OrganizationID.UUID, true
}

package domain

import (
	"context"
	"time"

	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/scope"

	"github.com/google/uuid"
)

// ServicePort is the billing code use case surface for organization admins
type ServicePort interface {
	List(ctx context.Context, sc scope.Scope, in ListInput) (querykit.Page[Code], error)
	Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (Code, error)
	Create(ctx context.Context, sc scope.Scope, in CreateInput) (Code, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in UpdateInput) (Code, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

// Repo is the storage surface bound to one querier
type Repo interface {
	List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[Code], error)
	// Find returns the single code matching where or perr.ErrNotFound
	Find(ctx context.Context, where querykit.Cond) (Code, error)
	// Lock reads a code by id FOR UPDATE
	Lock(ctx context.Context, id uuid.UUID) (Code, error)
	// CodeTaken fails with a conflict when org already has code
	CodeTaken(ctx context.Context, org uuid.UUID, code string) error
	Insert(ctx context.Context, c Code) error
	// Update writes c if the stored updated_at still equals prev
	Update(ctx context.Context, c Code, prev time.Time) error
	// Remove deletes the row if the stored updated_at still equals prev
	Remove(ctx context.Context, id uuid.UUID, prev time.Time) error
}

// Table is the billing code table
const Table = "billing_codes"

// Row exposes a code under its column names for in-memory evaluation
func Row(c Code) querykit.Row {
	return querykit.Row{
		"id":              c.ID,
		"organization_id": c.OrganizationID,
		"code":            c.Code,
		"description":     c.Description,
		"amount":          c.Amount,
		"created_at":      c.CreatedAt,
		"updated_at":      c.UpdatedAt,
	}
}

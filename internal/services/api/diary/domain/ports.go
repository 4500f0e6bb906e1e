package domain

import (
	"context"
	"time"

	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/scope"

	"github.com/google/uuid"
)

// ServicePort is the diary use case surface
type ServicePort interface {
	List(ctx context.Context, sc scope.Scope, in ListInput) (querykit.Page[Entry], error)
	Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (Entry, error)
	Create(ctx context.Context, sc scope.Scope, in CreateInput) (Entry, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in UpdateInput) (Entry, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

// Repo is the storage surface bound to one querier
type Repo interface {
	// List pages the entries matching where
	List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[Entry], error)
	// Find returns the single entry matching where or perr.ErrNotFound
	Find(ctx context.Context, where querykit.Cond) (Entry, error)
	// Lock reads an entry by id FOR UPDATE, archived rows included
	Lock(ctx context.Context, id uuid.UUID) (Entry, error)
	// TitleTaken fails with a conflict when owner already has a live entry titled title
	TitleTaken(ctx context.Context, owner uuid.UUID, title string, except uuid.UUID) error
	Insert(ctx context.Context, e Entry) error
	// Update writes e if the stored updated_at still equals prev
	Update(ctx context.Context, e Entry, prev time.Time) error
	// Archive sets deleted_at if the stored updated_at still equals prev
	Archive(ctx context.Context, id uuid.UUID, at, prev time.Time) error
}

// Table is the diary entry table
const Table = "diary_entries"

// Row exposes an entry under its column names for in-memory evaluation
func Row(e Entry) querykit.Row {
	return querykit.Row{
		"id":         e.ID,
		"owner_id":   e.OwnerID,
		"title":      e.Title,
		"body":       e.Body,
		"mood":       e.Mood,
		"created_at": e.CreatedAt,
		"updated_at": e.UpdatedAt,
		"deleted_at": e.DeletedAt,
	}
}

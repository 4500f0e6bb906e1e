package domain

import (
	"context"
	"time"

	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/scope"

	"github.com/google/uuid"
)

// ServicePort is the appointment use case surface for technicians
type ServicePort interface {
	List(ctx context.Context, sc scope.Scope, in ListInput) (querykit.Page[Appointment], error)
	Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (Appointment, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in UpdateInput) (Appointment, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

// Repo is the storage surface bound to one querier
type Repo interface {
	List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[Appointment], error)
	// Find reads an appointment by id with its technicians
	Find(ctx context.Context, id uuid.UUID) (Appointment, error)
	// Lock is Find under FOR UPDATE
	Lock(ctx context.Context, id uuid.UUID) (Appointment, error)
	// Room reads the tenant and tombstone of a room
	Room(ctx context.Context, id uuid.UUID) (guardkit.RefRow, error)
	// Update writes a if the stored updated_at still equals prev
	Update(ctx context.Context, a Appointment, prev time.Time) error
	// Archive sets deleted_at if the stored updated_at still equals prev
	Archive(ctx context.Context, id uuid.UUID, at, prev time.Time) error
}

const (
	// Table is the appointment table
	Table = "appointments"
	// Assignments links technicians to appointments
	Assignments = "appointment_assignments"
)

// Row exposes an appointment under its column names for in-memory evaluation
func Row(a Appointment) querykit.Row {
	techs := make([]any, len(a.Technicians))
	for i, id := range a.Technicians {
		techs[i] = id
	}
	r := querykit.Row{
		"id":              a.ID,
		"organization_id": a.OrganizationID,
		"title":           a.Title,
		"notes":           a.Notes,
		"status":          string(a.Status),
		"room_id":         a.RoomID,
		"starts_at":       a.StartsAt,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
		"deleted_at":      a.DeletedAt,
	}
	r[Assignments+".technician_id"] = techs
	return r
}

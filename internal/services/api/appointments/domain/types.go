// Package domain defines appointments, their lifecycle and request DTOs
package domain

import (
	"time"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/guardkit"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Status is an appointment lifecycle state
type Status string

// Lifecycle states
const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Lifecycle lists the allowed status moves; completed and cancelled are terminal
var Lifecycle = guardkit.Machine[Status]{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

// Appointment is one visit inside an organization
// Technicians holds the ids linked through appointment_assignments
type Appointment struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Title          string
	Notes          *string
	Status         Status
	RoomID         uuid.NullUUID
	StartsAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
	Technicians    []uuid.UUID
}

// AssignedTo reports whether tech is linked to the appointment
func (a Appointment) AssignedTo(tech uuid.UUID) bool {
	for _, id := range a.Technicians {
		if id == tech {
			return true
		}
	}
	return false
}

const maxTitle = 200

var knownStatus = ozzo.By(func(v any) error {
	s, ok := v.(Status)
	if ok && !Lifecycle.Known(s) {
		return ozzo.NewError("validation_status", "must be one of scheduled, in_progress, completed, cancelled")
	}
	return nil
})

// UpdateInput lists the mutable fields
// organization_id is accepted so a change can be refused rather than silently dropped
type UpdateInput struct {
	Title             dtokit.Opt[string]    `json:"title"`
	Notes             dtokit.Opt[string]    `json:"notes"`
	Status            dtokit.Opt[Status]    `json:"status"`
	RoomID            dtokit.Opt[uuid.UUID] `json:"room_id"`
	StartsAt          dtokit.Opt[time.Time] `json:"starts_at"`
	OrganizationID    dtokit.Opt[uuid.UUID] `json:"organization_id"`
	ExpectedUpdatedAt *time.Time            `json:"expected_updated_at"`
}

// Validate implements bind.Validatable
func (in UpdateInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Title, dtokit.IfSet(dtokit.NotBlank, ozzo.RuneLength(1, maxTitle))),
		ozzo.Field(&in.Notes, dtokit.IfSet().Nullable()),
		ozzo.Field(&in.Status, dtokit.IfSet(ozzo.Required, knownStatus)),
		ozzo.Field(&in.RoomID, dtokit.IfSet(dtokit.NotNilUUID).Nullable()),
		ozzo.Field(&in.StartsAt, dtokit.IfSet(ozzo.Required)),
	)
}

// ListInput is the search payload; room_id null matches appointments without a room
type ListInput struct {
	Page            *int                  `json:"page"`
	Limit           *int                  `json:"limit"`
	Sort            dtokit.Opt[string]    `json:"sort"`
	Search          dtokit.Opt[string]    `json:"search"`
	Status          dtokit.Opt[Status]    `json:"status"`
	RoomID          dtokit.Opt[uuid.UUID] `json:"room_id"`
	StartsFrom      dtokit.Opt[time.Time] `json:"starts_from"`
	StartsTo        dtokit.Opt[time.Time] `json:"starts_to"`
	IncludeArchived bool                  `json:"include_archived"`
}

// LenientJSON marks ListInput as a filter body
func (ListInput) LenientJSON() {}

// Validate implements bind.Validatable
func (in ListInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Status, dtokit.IfSet(knownStatus).Nullable()),
	)
}

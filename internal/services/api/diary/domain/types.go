// Package domain defines diary entries and their request DTOs
package domain

import (
	"time"

	"rolegate/internal/modkit/dtokit"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Entry is one diary entry owned by a diary user
type Entry struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Body      *string
	Mood      int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

const (
	// MinMood and MaxMood bound the mood scale
	MinMood = 1
	MaxMood = 5

	maxTitle = 200
	maxBody  = 20000
)

// CreateInput is the create payload; server assigned fields are not accepted
type CreateInput struct {
	Title string  `json:"title"`
	Body  *string `json:"body"`
	Mood  int     `json:"mood"`
}

// Validate implements bind.Validatable
func (in CreateInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Title, ozzo.Required.Error("is required"), dtokit.NotBlank, ozzo.RuneLength(1, maxTitle)),
		ozzo.Field(&in.Body, ozzo.NilOrNotEmpty, ozzo.RuneLength(0, maxBody)),
		ozzo.Field(&in.Mood, ozzo.Required.Error("is required"), ozzo.Min(MinMood), ozzo.Max(MaxMood)),
	)
}

// UpdateInput lists the mutable fields; body null clears the body
type UpdateInput struct {
	Title             dtokit.Opt[string] `json:"title"`
	Body              dtokit.Opt[string] `json:"body"`
	Mood              dtokit.Opt[int]    `json:"mood"`
	ExpectedUpdatedAt *time.Time         `json:"expected_updated_at"`
}

// Validate implements bind.Validatable
func (in UpdateInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Title, dtokit.IfSet(dtokit.NotBlank, ozzo.RuneLength(1, maxTitle))),
		ozzo.Field(&in.Body, dtokit.IfSet(ozzo.RuneLength(0, maxBody)).Nullable()),
		ozzo.Field(&in.Mood, dtokit.IfSet(ozzo.Required, ozzo.Min(MinMood), ozzo.Max(MaxMood))),
	)
}

// ListInput is the search payload; unknown fields are ignored
// an explicit null on any filter means no constraint
type ListInput struct {
	Page            *int                  `json:"page"`
	Limit           *int                  `json:"limit"`
	Sort            dtokit.Opt[string]    `json:"sort"`
	Search          dtokit.Opt[string]    `json:"search"`
	Mood            dtokit.Opt[int]       `json:"mood"`
	CreatedFrom     dtokit.Opt[time.Time] `json:"created_from"`
	CreatedTo       dtokit.Opt[time.Time] `json:"created_to"`
	IncludeArchived bool                  `json:"include_archived"`
}

// LenientJSON marks ListInput as a filter body
func (ListInput) LenientJSON() {}

// Validate implements bind.Validatable
func (in ListInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Mood, dtokit.IfSet(ozzo.Required, ozzo.Min(MinMood), ozzo.Max(MaxMood)).Nullable()),
		ozzo.Field(&in.Search, dtokit.IfSet(ozzo.RuneLength(0, maxTitle)).Nullable()),
	)
}

// Package domain defines billing codes and their request DTOs
package domain

import (
	"time"

	"rolegate/internal/modkit/dtokit"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Code is a priced billing code owned by one organization
// codes are hard deleted; there is no tombstone column
type Code struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Code           string
	Description    *string
	Amount         decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	maxCode        = 32
	maxDescription = 500
)

// nonNegative rejects amounts below zero
var nonNegative = ozzo.By(func(v any) error {
	if p, ok := v.(*decimal.Decimal); ok && p != nil {
		v = *p
	}
	if d, ok := v.(decimal.Decimal); ok && d.IsNegative() {
		return ozzo.NewError("validation_amount_negative", "must not be negative")
	}
	return nil
})

// CreateInput is the create payload; the organization comes from the caller
type CreateInput struct {
	Code        string           `json:"code"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// Validate implements bind.Validatable
func (in CreateInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Code, ozzo.Required.Error("is required"), dtokit.NotBlank, ozzo.RuneLength(1, maxCode)),
		ozzo.Field(&in.Description, ozzo.RuneLength(0, maxDescription)),
		ozzo.Field(&in.Amount, ozzo.Required.Error("is required"), nonNegative),
	)
}

// UpdateInput lists the mutable fields; the code itself is fixed once created
type UpdateInput struct {
	Description       dtokit.Opt[string]          `json:"description"`
	Amount            dtokit.Opt[decimal.Decimal] `json:"amount"`
	ExpectedUpdatedAt *time.Time                  `json:"expected_updated_at"`
}

// Validate implements bind.Validatable
func (in UpdateInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Description, dtokit.IfSet(ozzo.RuneLength(0, maxDescription)).Nullable()),
		ozzo.Field(&in.Amount, dtokit.IfSet(nonNegative)),
	)
}

// ListInput is the search payload; unknown fields are ignored
type ListInput struct {
	Page       *int                        `json:"page"`
	Limit      *int                        `json:"limit"`
	Sort       dtokit.Opt[string]          `json:"sort"`
	Search     dtokit.Opt[string]          `json:"search"`
	Code       dtokit.Opt[string]          `json:"code"`
	AmountFrom dtokit.Opt[decimal.Decimal] `json:"amount_from"`
	AmountTo   dtokit.Opt[decimal.Decimal] `json:"amount_to"`
}

// LenientJSON marks ListInput as a filter body
func (ListInput) LenientJSON() {}

package dtokit

import (
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// NotBlank rejects strings that are empty after trimming
var NotBlank = ozzo.By(func(v any) error {
	s, ok := v.(string)
	if !ok {
		if p, isPtr := v.(*string); isPtr && p != nil {
			s, ok = *p, true
		}
	}
	if ok && strings.TrimSpace(s) == "" {
		return ozzo.NewError("validation_not_blank", "must not be blank")
	}
	return nil
})

// NotNilUUID rejects the all zero uuid
var NotNilUUID = ozzo.By(func(v any) error {
	if id, ok := v.(uuid.UUID); ok && id == uuid.Nil {
		return ozzo.NewError("validation_uuid_nil", "must be a non nil uuid")
	}
	return nil
})

// OptRule applies rules to the value inside an Opt
type OptRule struct {
	rules    []ozzo.Rule
	nullable bool
}

// IfSet validates an Opt field: absent passes, null fails unless Nullable was used,
// a present value is checked against rules
func IfSet(rules ...ozzo.Rule) OptRule { return OptRule{rules: rules} }

// Nullable returns a copy of the rule that accepts explicit null
func (r OptRule) Nullable() OptRule {
	r.nullable = true
	return r
}

// Validate implements ozzo.Rule
func (r OptRule) Validate(value any) error {
	o, ok := value.(opt)
	if !ok {
		return ozzo.Validate(value, r.rules...)
	}
	v, set, null := o.inner()
	switch {
	case !set:
		return nil
	case null && !r.nullable:
		return ozzo.NewError("validation_not_null", "must not be null")
	case null:
		return nil
	}
	return ozzo.Validate(v, r.rules...)
}

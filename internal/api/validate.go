package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field validation failures. These are produced
// entirely client-side: an input that fails validation never reaches the
// backend.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StationInput is the payload for creating or updating a station.
type StationInput struct {
	Name      string  `json:"name" validate:"required,min=3,max=120"`
	Address   string  `json:"address" validate:"required"`
	District  string  `json:"district" validate:"required"`
	Status    string  `json:"status" validate:"required,oneof=active inactive maintenance"`
	Capacity  int     `json:"capacity" validate:"required,gt=0,lte=500"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// StaffInput is the payload for creating or updating a staff account.
type StaffInput struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=9,max=15"`
	Role      string `json:"role" validate:"required,oneof=manager technician support"`
	StationID string `json:"station_id" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateInput checks an input struct against its validate tags and returns
// a *ValidationError listing every failing field.
func ValidateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describeFailure(fe)
	}
	return &ValidationError{Fields: fields}
}

func describeFailure(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

var validate = validator.New()

// DoctorInput carries the fields entered for a new doctor.
type DoctorInput struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"required"`
	Address string `json:"address" validate:"required"`
}

func (in *DoctorInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.Address = strings.TrimSpace(in.Address)
}

// NoteInput carries a dated note.
type NoteInput struct {
	Date string `json:"date" validate:"required"`
	Desc string `json:"desc" validate:"required"`
}

func (in *NoteInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Desc = strings.TrimSpace(in.Desc)
}

// validateStruct turns validator failures into a VALIDATION AppError naming
// the offending fields.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var valErr validator.ValidationErrors
	if errors.As(err, &valErr) {
		var fields []string
		for _, fe := range valErr {
			fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
		}
		return apperrors.NewValidationError("validation failed on " + strings.Join(fields, ", "))
	}
	return apperrors.NewValidationError(err.Error())
}

func requireName(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewValidationError(kind + " name is required")
	}
	return value, nil
}

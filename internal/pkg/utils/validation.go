package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("severity", validateSeverity)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "minimal", "low", "mild", "moderate", "elevated", "high", "severe":
		return true
	}
	return false
}

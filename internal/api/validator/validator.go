package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	sep = " and "
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type XValidator interface {
	Validate(data interface{}) []Error
}

type xValidator struct {
	validator *validator.Validate
}

func NewXValidator(validate *validator.Validate) XValidator {
	for key, function := range valid {
		validate.RegisterValidation(key, function)
	}

	return &xValidator{validator: validate}
}

func (x *xValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, Error{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}

// Message flattens validation errors into a single human readable string.
func Message(errs []Error, format string) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, fmt.Sprintf(format, err.FailedField))
	}

	return strings.Join(messages, sep)
}

package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"oneof":    "{field} must be one of {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"hhmm":     "{field} must be a time in HH:MM format",
	"weekday":  "{field} must be a day of week between 0 and 6",
	"dive":     "{field} contains an invalid value",
}

// message renders the first field error that has a known template.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		tmpl, ok := templates[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
	}

	return fieldErrors.Error()
}

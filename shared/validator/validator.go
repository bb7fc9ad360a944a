package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// tags are the scheduling formats shared by request DTOs.
var tags = map[string]val.Func{
	"empty":   func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
	"hhmm":    isTimeOfDay,
	"date":    isDate,
	"weekday": isWeekday,
}

func isTimeOfDay(fl val.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := clock.ParseTimeOfDay(value)

	return err == nil
}

func isDate(fl val.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, value)

	return err == nil
}

func isWeekday(fl val.FieldLevel) bool {
	day := fl.Field().Int()

	return day >= 0 && day <= 6
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	for tag, fn := range tags {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Decode and rule failures are both 400s.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}

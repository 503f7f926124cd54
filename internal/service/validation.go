package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/radio-cms-api/internal/onair"
)

// NewValidator returns a validator aware of the schedule tags:
// dayspec accepts day specifiers such as "Weekdays" or "Saturday-Monday",
// clocktime accepts "7:00 PM" style times with an optional zone abbreviation.
// Field errors carry JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("dayspec", func(fl validator.FieldLevel) bool {
		return onair.ValidateDaySpecifier(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, ok := onair.ParseTimeOfDay(fl.Field().String())
		return ok
	})
	return v
}

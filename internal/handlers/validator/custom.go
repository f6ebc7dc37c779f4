package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/peeringlatam/network-planner/internal/estimation"
)

const dateLayout = "2006-01-02"

var hourRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

func dateValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(dateLayout, val)
	return err == nil
}

// hourValidator accepts whole hours only ("09:00"). Whether the hour is a bookable slot is
// decided by the appointment service.
func hourValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return hourRegex.MatchString(val)
}

func localeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return estimation.Locale(val).Valid()
}

package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ClockPattern accepts HH:MM and HH:MM:SS on a 24 hour clock.
	ClockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

	// ModuleCodePattern is the canonical, upper-cased module code.
	ModuleCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\d{3}[A-Z]?$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the schedule tags registered:
// "clock" for times of day and "weekday" for English day names.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return ClockPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, ok := ParseWeekday(fl.Field().String())
			return ok
		})
		instance = v
	})
	return instance
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// ParseWeekday accepts a full or three letter English day name in any case.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date in the form " + e.Param()
	case "clock":
		return e.Field() + " must be a time of day (HH:MM or HH:MM:SS)"
	case "weekday":
		return e.Field() + " must be a day name"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// FirstMessage renders the first field error of err, or err itself when it
// did not come from the validator.
func FirstMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return FormatFieldError(fieldErrs[0])
	}
	return err.Error()
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

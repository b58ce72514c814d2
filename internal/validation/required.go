package validation

import (
	"reflect"
	"strings"

	"github.com/deppfellow/fieldservice/internal/errs"
)

const (
	MsgRequired = "is required"
	MsgEmpty    = "must not be empty"
)

// RequiredFields checks every entry and returns field -> message for each
// violation. A nil value (typed nil pointers included) is "is required", a
// string that is blank after trimming is "must not be empty". All fields are
// checked; an empty map means everything is present.
func RequiredFields(fields map[string]any) map[string]string {
	violations := make(map[string]string)

	for name, value := range fields {
		if isNil(value) {
			violations[name] = MsgRequired
			continue
		}
		if s, ok := stringValue(value); ok && strings.TrimSpace(s) == "" {
			violations[name] = MsgEmpty
		}
	}

	return violations
}

// RequiredFieldsError turns a violation map into a *errs.ValidationError, or
// returns nil when there is nothing to report.
func RequiredFieldsError(violations map[string]string) error {
	if len(violations) == 0 {
		return nil
	}

	// map order is random; NewValidation sorts by field name.
	fields := make([]errs.FieldError, 0, len(violations))
	for name, msg := range violations {
		fields = append(fields, errs.FieldError{Field: name, Error: msg})
	}
	return errs.NewValidation("Validation failed", fields...)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func stringValue(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case *string:
		return *s, true
	}
	v := reflect.Indirect(reflect.ValueOf(value))
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

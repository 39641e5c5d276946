package validator

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors is a validation failure carrying per-field messages for inline
// display. It is detected locally before any network call and is never sent
// to the notification channel.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Check validates v and returns a FieldErrors error, or nil.
func Check(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return FieldErrors(fields)
	}
	return nil
}

// AsFieldErrors unwraps a FieldErrors from err if present.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

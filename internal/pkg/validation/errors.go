package validation

import (
	"sort"
	"strings"
)

// Errors maps a field path such as "billingAddress.city" to its message.
type Errors map[string]string

// Err returns nil when there are no failures and an *Error otherwise.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &Error{Fields: e}
}

// Merge copies other into e, keeping existing messages.
func (e Errors) Merge(other Errors) Errors {
	for field, msg := range other {
		if _, ok := e[field]; !ok {
			e[field] = msg
		}
	}
	return e
}

// Error is returned when a form fails validation.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

package books

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an id-keyed lookup has no matching book.
var ErrNotFound = errors.New("book not found")

// ValidationFailure is returned by Create and Update when the submitted
// fields cannot be persisted. Fields holds the attempted values so the
// originating form can be redisplayed; ID is zero on create.
type ValidationFailure struct {
	ID     uint
	Fields BookFields
	Errors map[string][]string // field name -> messages, in check order
}

func (v *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(v.Messages(), "; "))
}

// Messages returns every message ordered by form field.
func (v *ValidationFailure) Messages() []string {
	var messages []string
	for _, field := range fieldOrder {
		messages = append(messages, v.Errors[field]...)
	}
	return messages
}

// FieldErrors returns the messages recorded for a single field.
func (v *ValidationFailure) FieldErrors(field string) []string {
	return v.Errors[field]
}

// HasError reports whether field failed validation.
func (v *ValidationFailure) HasError(field string) bool {
	return len(v.Errors[field]) > 0
}

func (v *ValidationFailure) add(field, message string) {
	if v.Errors == nil {
		v.Errors = make(map[string][]string)
	}
	v.Errors[field] = append(v.Errors[field], message)
}

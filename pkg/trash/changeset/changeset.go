// Package changeset holds pending, validated changes against a record, and the
// Intent union that lets mutations accept either a bare record or a changeset.
package changeset

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"trash/internal/core/apperror"
	"trash/pkg/trash/schema"
)

// MsgBlank is the message ValidateRequired records for a missing value.
const MsgBlank = "can't be blank"

// Change is one pending column assignment.
type Change struct {
	Field string
	Value any
}

// FieldError is a validation failure attached to a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + " " + e.Message
}

// Changeset is a diff against Data that has not been committed yet.
// Changes keep insertion order; putting a field twice overwrites its value in place.
type Changeset[T any] struct {
	data    T
	changes []Change
	errors  []FieldError
}

// New starts an empty, valid changeset over data.
func New[T any](data T) *Changeset[T] {
	return &Changeset[T]{data: data}
}

// Data returns the record the changes apply to.
func (c *Changeset[T]) Data() T {
	return c.data
}

// Put records a change. A nil value assigns NULL.
func (c *Changeset[T]) Put(field string, value any) *Changeset[T] {
	if i := c.indexOf(field); i >= 0 {
		c.changes[i].Value = value
		return c
	}
	c.changes = append(c.changes, Change{Field: field, Value: value})
	return c
}

// Change returns the pending value of field.
func (c *Changeset[T]) Change(field string) (any, bool) {
	if i := c.indexOf(field); i >= 0 {
		return c.changes[i].Value, true
	}
	return nil, false
}

// Changes returns a copy of the pending changes in insertion order.
func (c *Changeset[T]) Changes() []Change {
	return slices.Clone(c.changes)
}

// Fields returns the changed field names in insertion order.
func (c *Changeset[T]) Fields() []string {
	names := make([]string, len(c.changes))
	for i, ch := range c.changes {
		names[i] = ch.Field
	}
	return names
}

// HasChanges reports whether anything would be written.
func (c *Changeset[T]) HasChanges() bool {
	return len(c.changes) > 0
}

// AddError marks the changeset invalid.
func (c *Changeset[T]) AddError(field, message string) *Changeset[T] {
	c.errors = append(c.errors, FieldError{Field: field, Message: message})
	return c
}

// ValidateRequired adds MsgBlank for every field that is blank after applying
// pending changes. Nil pointers, nil values and whitespace-only strings are blank.
func (c *Changeset[T]) ValidateRequired(fields ...string) *Changeset[T] {
	for _, field := range fields {
		value, ok := c.Change(field)
		if !ok {
			value, _ = schema.Value(c.data, field)
		}
		if isBlank(value) {
			c.AddError(field, MsgBlank)
		}
	}
	return c
}

// ValidateChange runs check against the pending value of field, if any.
// A non-empty result is recorded as an error on field.
func (c *Changeset[T]) ValidateChange(field string, check func(value any) string) *Changeset[T] {
	value, ok := c.Change(field)
	if !ok {
		return c
	}
	if msg := check(value); msg != "" {
		c.AddError(field, msg)
	}
	return c
}

// Errors returns a copy of the recorded validation errors.
func (c *Changeset[T]) Errors() []FieldError {
	return slices.Clone(c.errors)
}

// Valid reports whether no errors were recorded.
func (c *Changeset[T]) Valid() bool {
	return len(c.errors) == 0
}

// Clone returns an independent copy. Data is copied by value.
func (c *Changeset[T]) Clone() *Changeset[T] {
	return &Changeset[T]{
		data:    c.data,
		changes: slices.Clone(c.changes),
		errors:  slices.Clone(c.errors),
	}
}

// Err returns a VALIDATION_ERROR describing the field errors, or nil if valid.
func (c *Changeset[T]) Err() error {
	if c.Valid() {
		return nil
	}

	byField := make(map[string][]string, len(c.errors))
	for _, fe := range c.errors {
		byField[fe.Field] = append(byField[fe.Field], fe.Message)
	}

	return apperror.NewValidation("changeset is invalid").WithDetail("errors", byField)
}

func (c *Changeset[T]) indexOf(field string) int {
	return slices.IndexFunc(c.changes, func(ch Change) bool { return ch.Field == field })
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.String {
		return strings.TrimSpace(rv.String()) == ""
	}
	return false
}

// InvalidError is returned when a changeset cannot be committed because it
// carries validation errors. It unwraps to a VALIDATION_ERROR AppError.
type InvalidError[T any] struct {
	Changeset *Changeset[T]
}

// NewInvalidError wraps cs.
func NewInvalidError[T any](cs *Changeset[T]) *InvalidError[T] {
	return &InvalidError[T]{Changeset: cs}
}

func (e *InvalidError[T]) Error() string {
	msgs := make([]string, 0, len(e.Changeset.errors))
	for _, fe := range e.Changeset.errors {
		msgs = append(msgs, fe.String())
	}
	return fmt.Sprintf("invalid changeset: %s", strings.Join(msgs, "; "))
}

func (e *InvalidError[T]) Unwrap() error {
	return e.Changeset.Err()
}

// AsInvalid extracts the rejected changeset from err.
func AsInvalid[T any](err error) (*InvalidError[T], bool) {
	var invalid *InvalidError[T]
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}

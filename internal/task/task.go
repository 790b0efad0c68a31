// Package task holds the task list model and its write-through store.
package task

import (
	"errors"
	"fmt"
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ErrNotFound is returned when an id does not name a stored task.
var ErrNotFound = errors.New("task not found")

// ErrEmptySelection is matched by every *EmptySelectionError via errors.Is.
var ErrEmptySelection = errors.New("no tasks to delete")

// ValidationError reports rejected input. Nothing is mutated when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EmptySelectionError is returned by Clear when the predicate matched nothing.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return ErrEmptySelection.Error()
}

func (e *EmptySelectionError) Is(target error) bool {
	return target == ErrEmptySelection
}

func errEmptyText() error {
	return &ValidationError{Field: "text", Reason: "must not be empty"}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

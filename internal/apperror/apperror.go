// Package apperror holds the error kinds surfaced to the user interface.
// Every kind is recoverable: callers report it and carry on.
package apperror

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Entity string
	ID     int64
	Path   string // set for missing files
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s not found: %s", e.Entity, e.Path)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type DuplicateError struct {
	Entity string
	ID     int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %d already present", e.Entity, e.ID)
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export: %v", e.Err)
	}
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func FileNotFound(path string) error {
	return &NotFoundError{Entity: "file", Path: path}
}

func Duplicate(entity string, id int64) error {
	return &DuplicateError{Entity: entity, ID: id}
}

// Persistence wraps a storage fault. A nil err yields nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func Export(path string, err error) error {
	if err == nil {
		return nil
	}
	var ee *ExportError
	if errors.As(err, &ee) {
		return err
	}
	return &ExportError{Path: path, Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

func IsPersistence(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}

func IsExport(err error) bool {
	var e *ExportError
	return errors.As(err, &e)
}

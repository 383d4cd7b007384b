package tracker

import (
	"errors"
	"fmt"

	taskdb "github.com/taskdeck/taskdeck/internal/db"
)

// NotFoundError signals that a referenced entity id does not exist.
type NotFoundError struct {
	Resource string // "task", "group", "user"
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError signals malformed or out-of-range input. Conflict marks
// constraint violations such as a duplicate email.
type ValidationError struct {
	Msg      string
	Conflict bool
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// StoreError wraps an underlying persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a constraint-violation ValidationError.
func IsConflict(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Conflict
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func notFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// isDuplicate reports whether err is a unique-constraint violation.
func isDuplicate(err error) bool {
	return taskdb.IsDuplicateEntry(err)
}

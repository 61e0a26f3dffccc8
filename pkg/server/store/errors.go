package store

import (
	"errors"
	"fmt"
)

// PersistenceError wraps a network or storage failure during a save or
// load. Callers keep their previous state: a failed save leaves the
// pending buffer intact, a failed load leaves the committed matrix in
// place.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("permission storage %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ConstraintViolation reports a storage-level check constraint
// rejecting a module or level string. It is non-retriable: the schema
// and the code disagree, which needs operator-visible remediation.
type ConstraintViolation struct {
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("storage constraint %q rejected permission data (schema migration required): %v", e.Constraint, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether err carries a ConstraintViolation.
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}

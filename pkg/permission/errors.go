package permission

import "fmt"

// ValidationError reports a malformed matrix, module, level or role before
// any I/O is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid permission data: %s: %s", e.Field, e.Reason)
}

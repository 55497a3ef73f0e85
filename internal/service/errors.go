package service

import "fmt"

// NotFoundError indicates a referenced record does not exist for the
// requesting user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// PreconditionError indicates a record exists but is not in a usable state
// for the requested operation.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Message)
}

package generate

import "fmt"

// ResponseShapeError indicates the model's output could not be parsed into
// the expected contract. Fatal for the triggering request; not retried.
type ResponseShapeError struct {
	Message string
	Cause   error
}

func (e *ResponseShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response shape error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("response shape error: %s", e.Message)
}

func (e *ResponseShapeError) Unwrap() error {
	return e.Cause
}

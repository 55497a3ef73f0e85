package llm

import "fmt"

// UpstreamError is the single failure kind surfaced by the text-generation
// boundary. Provider-specific errors (network, auth, rate limit, empty
// responses) all collapse into it; callers do not retry.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

package services

import "fmt"

// Reasons carried by UpstreamError.
const (
	ReasonStatus          = "status"
	ReasonInvalidResponse = "invalid_response"
	ReasonTimeout         = "timeout"
	ReasonBlocked         = "blocked"
)

// ConfigurationError means the service cannot call upstream at all. It needs an
// operator fix and is never worth retrying.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// UpstreamError is a failed or unusable response from the completion API.
// Status is the upstream HTTP status when one was received.
type UpstreamError struct {
	Status int
	Reason string
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("upstream %s (status %d): %s", e.Reason, e.Status, e.Detail)
}

// UnexpectedError wraps transport and other faults. Its message has already
// been scrubbed of the credential.
type UnexpectedError struct {
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string { return e.Message }

func (e *UnexpectedError) Unwrap() error { return e.Err }

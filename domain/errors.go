package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks a request the caller can correct,
	// such as supplying neither profile_url nor instructor_id.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRemoteUnavailable marks a network-level failure reaching the
	// profile service, including timeouts.
	ErrRemoteUnavailable = errors.New("profile service unavailable")

	// ErrGenerationFailed marks any failure of the completion call.
	ErrGenerationFailed = errors.New("response generation failed")
)

// RemoteError is a non-success HTTP status from the profile service.
// The upstream status and body are forwarded to the caller as-is.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("profile service returned status %d: %s", e.StatusCode, e.Body)
}

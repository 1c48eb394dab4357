package runner

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrEmptyMessage is returned by Send when the user text is blank.
var ErrEmptyMessage = errors.New("message is empty")

// RemoteCallError wraps any failure of the Messages API call: transport
// errors, error statuses, stream error events and unusable responses.
type RemoteCallError struct {
	Message string
	// StatusCode is the HTTP status when the API answered with an error, else 0.
	StatusCode int
	Err        error
}

func (e *RemoteCallError) Error() string { return e.Message }

func (e *RemoteCallError) Unwrap() error { return e.Err }

func remoteError(err error) *RemoteCallError {
	rc := &RemoteCallError{Message: err.Error(), Err: err}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		rc.StatusCode = apiErr.StatusCode
	}
	return rc
}

// class buckets an error for telemetry without leaking its message.
func (e *RemoteCallError) class() string {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return "auth"
	case e.StatusCode == 429:
		return "rate_limit"
	case e.StatusCode >= 500:
		return "server"
	case e.StatusCode >= 400:
		return "request"
	case errors.Is(e.Err, errMalformedResponse):
		return "malformed_response"
	default:
		return "transport"
	}
}

var errMalformedResponse = errors.New("malformed response")

func malformed(detail string) *RemoteCallError {
	return remoteError(fmt.Errorf("%w: %s", errMalformedResponse, detail))
}

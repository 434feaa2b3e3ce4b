// Package api implements the HTTP client for the CloudVault backend:
// account flows, the file listing, uploads, deletes and temporary
// download URLs.
package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the backend rejected the session token.
// Callers clear the stored session and send the user back to login.
var ErrUnauthorized = errors.New("session expired or invalid")

// ErrUnreachable indicates a transport-level failure: no response arrived
// at all. It deliberately does not distinguish timeout, DNS failure, or a
// crashed server — the user sees one generic message either way.
var ErrUnreachable = errors.New("server unreachable, try again")

// Error is a server-reported failure: a response arrived with a non-success
// status. Message carries the backend's error string when one was sent, and
// is shown to the user verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsServerError reports whether err is a server-reported failure, as
// opposed to a transport failure where no response was received.
func IsServerError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned on 401/403. By the time the caller sees it the
// session has already been torn down; the only recovery is a fresh login.
var ErrUnauthorized = errors.New("session expired or unauthorized")

// APIError is any non-auth 4xx/5xx. Message carries the server's message
// field verbatim for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}

// TransportError is a network-level failure: the request never produced an
// HTTP status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

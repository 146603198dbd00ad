package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("rejected by server")
	ErrNotFound     = errors.New("not found")
)

// Generic messages used when the server did not supply one.
const (
	msgTransport    = "unable to reach the server, please try again"
	msgUnauthorized = "session expired, please sign in again"
	msgNotFound     = "record not found"
	msgRejected     = "the server rejected the request"
)

// APIError is a failed API call. Kind is one of the package sentinels and
// Message is the server-supplied text when there was one.
type APIError struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the text to show a user for err: the server message of an
// APIError, otherwise err.Error().
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func kindForStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status == 400 || status == 409 || status == 422:
		return ErrValidation
	default:
		return ErrUnavailable
	}
}

func defaultMessage(kind error) string {
	switch kind {
	case ErrUnauthorized:
		return msgUnauthorized
	case ErrNotFound:
		return msgNotFound
	case ErrValidation:
		return msgRejected
	default:
		return msgTransport
	}
}

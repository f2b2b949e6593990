package kiwi

import "fmt"

// ErrAuthentication defines failed login or a session rejected right after re-authentication.
type ErrAuthentication struct {
	Status int
	Reason string
	Err    error
}

// Error formats output.
func (e *ErrAuthentication) Error() string {
	msg := "authentication failed"
	if e.Status != 0 {
		msg = fmt.Sprintf("%s, status %d", msg, e.Status)
	}

	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}

	return msg
}

// Cause returns underlying error if any.
func (e *ErrAuthentication) Cause() error {
	return e.Err
}

// Unwrap returns underlying error if any.
func (e *ErrAuthentication) Unwrap() error {
	return e.Err
}

// ErrRemoteRequest defines unsuccessful response from Kiwi API.
type ErrRemoteRequest struct {
	Status int
	Body   string
}

// Error formats output.
func (e *ErrRemoteRequest) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("kiwi request failed with status %d", e.Status)
	}

	return fmt.Sprintf("kiwi request failed with status %d: %s", e.Status, e.Body)
}

// ErrMalformedResponse defines response which can't be parsed.
type ErrMalformedResponse struct {
	Reason string
}

// Error formats output.
func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed kiwi response: %s", e.Reason)
}

// ErrInvalidSettings defines wrong client configuration.
type ErrInvalidSettings struct {
	Field string
}

// Error formats output.
func (e *ErrInvalidSettings) Error() string {
	return fmt.Sprintf("invalid kiwi settings: %s", e.Field)
}

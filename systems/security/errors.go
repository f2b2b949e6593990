package security

import "fmt"

// ErrNoHeader defines request without basic auth credentials.
type ErrNoHeader struct {
}

// Error formats output.
func (*ErrNoHeader) Error() string {
	return "no basic auth credentials"
}

// ErrMalformedHeader defines basic auth header which can't be parsed.
type ErrMalformedHeader struct {
	Reason string
}

// Error formats output.
func (e *ErrMalformedHeader) Error() string {
	return fmt.Sprintf("malformed basic auth header: %s", e.Reason)
}

// ErrInvalidCredentials defines unknown user or wrong password.
type ErrInvalidCredentials struct {
	User string
}

// Error formats output.
func (e *ErrInvalidCredentials) Error() string {
	return fmt.Sprintf("invalid credentials for user %s", e.User)
}

package secret

import "fmt"

// ErrSecretNotFound defines missing secret.
type ErrSecretNotFound struct {
	Name string
}

// Error formats output.
func (e *ErrSecretNotFound) Error() string {
	return fmt.Sprintf("secret %s not found", e.Name)
}

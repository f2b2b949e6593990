package utils

import "fmt"

// ErrInvalidConfig defines wrong configuration error.
type ErrInvalidConfig struct {
	Name string
}

// Error formats output.
func (e *ErrInvalidConfig) Error() string {
	if "" == e.Name {
		return "config validation error"
	}

	return fmt.Sprintf("config validation error: %s", e.Name)
}

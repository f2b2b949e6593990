package settings

import "fmt"

// ErrNoConfig defines missing configuration.
type ErrNoConfig struct {
	Location string
}

// Error formats output.
func (e *ErrNoConfig) Error() string {
	return fmt.Sprintf("didn't get any configuration from %s", e.Location)
}

// ErrMissingProvider defines missing mandatory provider.
type ErrMissingProvider struct {
	System   string
	Provider string
}

// Error formats output.
func (e *ErrMissingProvider) Error() string {
	return fmt.Sprintf("%s/%s is not configured", e.System, e.Provider)
}

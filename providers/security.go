package providers

// ISecurityProvider defines API security provider.
type ISecurityProvider interface {
	IsEnabled() bool
	Authorize(headers map[string][]string) (string, error)
}

package providers

import "context"

// IServerProvider defines HTTP API server.
type IServerProvider interface {
	Start() error
	Stop(ctx context.Context) error
}

// Package delivery defines the contract every transport of the application
// implements, so the entrypoint can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, scheduled worker)
// started by the application entrypoint and stopped through fx lifecycle
// hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}

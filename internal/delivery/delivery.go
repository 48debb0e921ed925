// Package delivery holds the inbound adapters of the service.
package delivery

import "context"

// Delivery is a server started by the application once the dependency graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}

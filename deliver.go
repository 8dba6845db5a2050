package filmcard

import "context"

// Deliverer sends output to a destination.
type Deliverer interface {
	// Deliver sends one rendered output line.
	Deliver(ctx context.Context, destination, line string) error

	// Notify sends a user-visible error notification.
	Notify(ctx context.Context, destination, message string) error
}

package port

import "context"

// Pinger is implemented by backends that can report whether they are
// reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

package health

import "context"

// Checker reports whether a component is usable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

package ports

import "context"

// HealthChecker reports liveness of one dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

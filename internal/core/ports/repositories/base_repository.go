package repositories

import "context"

// Transactor groups store calls into one unit of work.
type Transactor interface {
	// RunInTx runs fn with a context bound to a single unit of work. The unit
	// commits when fn returns nil and rolls back otherwise. Nested calls join
	// the outer unit.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

package contract

import "context"

// Sequence is a lazy, restartable, ordered result set. Nothing is read until one
// of its methods is called and every call re-runs the query, so a caller can
// page through it any number of times.
//
// Sequences returned from within a transaction must not outlive it.
type Sequence[T any] interface {
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, offset, limit int) ([]*T, error)
	All(ctx context.Context) ([]*T, error)
}

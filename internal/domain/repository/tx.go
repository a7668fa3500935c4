package repository

import "context"

// TxManager runs a function inside a database transaction. The context
// passed to fn carries the transaction; repositories resolve it before
// falling back to the shared connection, so multi-step writes commit or
// roll back as one.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

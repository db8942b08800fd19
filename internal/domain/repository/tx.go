package repository

import "context"

// TxManager runs a function inside a database transaction. Repositories
// called with the returned context join the same transaction, so a returned
// error rolls back every write made inside fn.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

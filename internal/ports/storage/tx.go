package storage

import "context"

// TxRunner ejecuta fn dentro de una transacción.
// El ctx que recibe fn transporta la tx; los repos la toman de ahí.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

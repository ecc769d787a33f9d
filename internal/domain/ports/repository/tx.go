package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle threaded through repository calls.
// Its concrete type is infra-defined (pgx.Tx for Postgres); repositories
// must accept nil and fall back to their non-transactional path.
type Tx interface{}

// NoTX is passed where no transaction is in flight.
var NoTX Tx

// TransactionManager runs a function inside one database transaction,
// handing the tx handle to the callback. Use cases stay free of storage
// types; repositories detect a live tx to take row locks
// (SELECT ... FOR UPDATE) and bind their statements to it.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

// Package repokit binds repositories to the store seam so services never
// hold a pool or a tx directly
package repokit

import (
	"context"
	"fmt"
	"time"

	"ordertrack/internal/platform/store"
)

type (
	// Queryer is the read and write surface a bound repository runs against
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
)

// Binder hands out a repository bound to one Queryer, the pool or a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc lets a plain constructor act as a Binder
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind panics on a nil Queryer, then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// InTx opens a transaction on db and hands fn the repository bound to it
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	return db.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}

type guarder interface {
	Guard(context.Context) error
}

// MustGuard runs st.Guard at process startup and panics on failure
// ctx without a deadline gets 5s
func MustGuard(ctx context.Context, name string, st guarder) {
	if st == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("%s guard failed: %w", name, err))
	}
}

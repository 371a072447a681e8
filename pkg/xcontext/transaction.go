package xcontext

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WithDBTransaction replaces the database of the returned context by a new
// transaction. It must be paired with WithCommitDBTransaction and a deferred
// WithRollbackDBTransaction.
func WithDBTransaction(ctx context.Context) context.Context {
	tx := DB(ctx).WithContext(ctx).Begin()
	ctx = WithDB(ctx, tx)
	return context.WithValue(ctx, txKey{}, tx)
}

func WithCommitDBTransaction(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return tx.Commit().Error
}

// WithRollbackDBTransaction is a no-op on a transaction which is already
// committed.
func WithRollbackDBTransaction(ctx context.Context) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return
	}

	tx.Rollback()
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// WithTransaction runs fn inside one database transaction. The transaction is
// committed when fn returns nil and rolled back when fn returns an error or
// panics; the panic is re-raised after the rollback. A context which is already
// inside a transaction joins it instead of opening a nested one.
func WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	ctx = WithDBTransaction(ctx)
	if err := DB(ctx).Error; err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		WithRollbackDBTransaction(ctx)
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		return err
	}

	if err := WithCommitDBTransaction(ctx); err != nil {
		return fmt.Errorf("cannot commit transaction: %w", err)
	}

	committed = true
	return nil
}

package database

import (
	"context"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction, committing when fn returns
// nil and rolling back otherwise. fn must only use tx: on SQLite the
// transaction holds the only connection.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	return db.Session(ctx).Transaction(fn)
}

// WithTransactionResult is WithTransaction for functions producing a value.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

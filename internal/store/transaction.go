package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-feedback/internal/logger"
)

type txCtxKey struct{}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx, ok
}

// WithTx implements [Transactor]. A call made while a transaction is
// already open in ctx joins it instead of starting a new one.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithTx").Msg("failed to begin transaction")
		return wrap(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		log.Debug().Err(err).Str("func", "*DB.WithTx").Msg("rolling back transaction")
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.WithTx").Msg("failed to commit transaction")
		return wrap(ErrCommitingTransaction, err)
	}

	return nil
}

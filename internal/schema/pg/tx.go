package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type txFunc func(ctx context.Context, tx *sqlx.Tx) error

// WithTx runs fn inside one transaction: commit on success, rollback on error or panic.
func WithTx(ctx context.Context, db *sqlx.DB, fn txFunc, opts *sql.TxOptions) (err error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollbackTx(tx)
			panic(p)
		} else if err != nil {
			rollbackTx(tx)
		} else {
			err = tx.Commit()
			if err != nil {
				err = fmt.Errorf("cannot commit transaction: %w", err)
			}
		}
	}()

	err = fn(ctx, tx)

	return err
}

func rollbackTx(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		zap.L().Warn("tx.Rollback()", zap.Error(err))
	}
}

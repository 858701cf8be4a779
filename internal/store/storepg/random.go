package storepg

import (
	"context"
	"fmt"
	"shopdb/internal/generator"
	"shopdb/internal/schema/pg"

	"github.com/jmoiron/sqlx"
)

// GenerateRandomData sends the generated INSERT ... SELECT and reports how many rows it added.
func (s *Storage) GenerateRandomData(ctx context.Context, req generator.Request) (int64, error) {
	query, args, err := generator.Build(req)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = pg.WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert generated rows into %s error: %w", req.Table, err)
		}
		affected, err = res.RowsAffected()
		return err
	}, nil)
	if err != nil {
		return 0, classify(err)
	}
	return affected, nil
}

package storepg

import (
	"context"
	"fmt"
	"shopdb/internal/schema"
	"shopdb/internal/schema/pg"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func (s *Storage) InsertRecord(ctx context.Context, rt *schema.RecordType, columns []string, values []any) error {
	query, args, err := squirrel.
		Insert(pq.QuoteIdentifier(rt.Table)).
		Columns(quoteAll(columns)...).
		Values(values...).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("squirrel.Insert: %w", err)
	}

	err = pg.WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert into %s error: %w", rt.Table, err)
		}
		return nil
	}, nil)
	return classify(err)
}

// UpdateFirst overwrites the given fields of the first row matching condition.
// Row order is whatever the engine returns; there is no ORDER BY.
func (s *Storage) UpdateFirst(ctx context.Context, rt *schema.RecordType, values map[string]any, condition string) (bool, error) {
	set := make(map[string]any, len(values))
	for column, v := range values {
		set[pq.QuoteIdentifier(column)] = v
	}
	table := pq.QuoteIdentifier(rt.Table)
	query, args, err := squirrel.
		Update(table).
		SetMap(set).
		Where(firstMatch(table, condition)).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return false, fmt.Errorf("squirrel.Update: %w", err)
	}
	return s.execFirst(ctx, query, args)
}

func (s *Storage) DeleteFirst(ctx context.Context, rt *schema.RecordType, condition string) (bool, error) {
	table := pq.QuoteIdentifier(rt.Table)
	query, args, err := squirrel.
		Delete(table).
		Where(firstMatch(table, condition)).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return false, fmt.Errorf("squirrel.Delete: %w", err)
	}
	return s.execFirst(ctx, query, args)
}

func (s *Storage) execFirst(ctx context.Context, query string, args []any) (bool, error) {
	var affected int64
	err := pg.WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	}, nil)
	if err != nil {
		return false, classify(err)
	}
	return affected > 0, nil
}

func firstMatch(table, condition string) string {
	where := ""
	if strings.TrimSpace(condition) != "" {
		where = " where " + rawPredicate(condition)
	}
	return fmt.Sprintf(firstMatchPredicate, table, where)
}

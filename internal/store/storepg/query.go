package storepg

import (
	"context"
	"fmt"
	"shopdb/internal/domain"
	"shopdb/internal/schema"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

func (s *Storage) SelectRecords(ctx context.Context, rt *schema.RecordType, columns []string, condition string) ([]domain.Row, error) {
	cols, err := projection(rt, columns)
	if err != nil {
		return nil, err
	}
	builder := squirrel.
		Select(quoteAll(columnNames(cols))...).
		From(pq.QuoteIdentifier(rt.Table)).
		PlaceholderFormat(squirrel.Dollar)
	if strings.TrimSpace(condition) != "" {
		builder = builder.Where(rawPredicate(condition))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.Select: %w", err)
	}
	return s.queryRows(ctx, query, args, cols)
}

// FindRecords is the typed search: every operand is bound as a parameter.
func (s *Storage) FindRecords(ctx context.Context, rt *schema.RecordType, column string, filter domain.Filter) ([]domain.Row, error) {
	cols, err := projection(rt, []string{column})
	if err != nil {
		return nil, err
	}
	pred, err := filterPredicate(column, filter)
	if err != nil {
		return nil, err
	}
	query, args, err := squirrel.
		Select(pq.QuoteIdentifier(column)).
		From(pq.QuoteIdentifier(rt.Table)).
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.Select: %w", err)
	}
	return s.queryRows(ctx, query, args, cols)
}

func (s *Storage) queryRows(ctx context.Context, query string, args []any, cols []schema.Column) ([]domain.Row, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("select error: %w", err))
	}
	defer rows.Close()

	res := make([]domain.Row, 0)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("rows.SliceScan: %w", err)
		}
		for i := range values {
			values[i], err = normalize(cols[i], values[i])
			if err != nil {
				return nil, err
			}
		}
		res = append(res, values)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("rows.Err: %w", err))
	}
	return res, nil
}

func projection(rt *schema.RecordType, columns []string) ([]schema.Column, error) {
	if len(columns) == 0 {
		return rt.Columns, nil
	}
	res := make([]schema.Column, 0, len(columns))
	for _, name := range columns {
		c, err := rt.Column(name)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

func columnNames(cols []schema.Column) []string {
	res := make([]string, 0, len(cols))
	for _, c := range cols {
		res = append(res, c.Name)
	}
	return res
}

// normalize turns driver text representations into plain Go values.
func normalize(c schema.Column, v any) (any, error) {
	var text string
	switch val := v.(type) {
	case []byte:
		text = string(val)
	case string:
		text = val
	default:
		return v, nil
	}
	if c.Type != domain.TextArrayColumn {
		return text, nil
	}
	var arr pq.StringArray
	if err := arr.Scan(text); err != nil {
		return nil, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return []string(arr), nil
}

func filterPredicate(column string, f domain.Filter) (squirrel.Sqlizer, error) {
	col := pq.QuoteIdentifier(column)
	switch f.Kind {
	case domain.NumberFilter, domain.DateFilter:
		return squirrel.Expr(col+" BETWEEN ? AND ?", f.Low, f.High), nil
	case domain.StringFilter:
		return squirrel.Like{col: "%" + f.Value + "%"}, nil
	case domain.BooleanFilter:
		b, err := strconv.ParseBool(f.Value)
		if err != nil {
			return nil, fmt.Errorf("boolean %q: %w", f.Value, domain.ErrorTypeCoercion)
		}
		return squirrel.Eq{col: b}, nil
	default:
		return nil, fmt.Errorf("search type %q: %w", f.Kind, domain.ErrorInvalidArgument)
	}
}

package pg

import (
	"context"
	"fmt"
	"shopdb/internal/domain"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// TableGenerator creates and drops a single, caller-described table.
type TableGenerator struct {
	db        *sqlx.DB
	tableName string
}

func NewTableGenerator(db *sqlx.DB, tableName string) (*TableGenerator, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if strings.TrimSpace(tableName) == "" {
		return nil, fmt.Errorf("table name cannot be empty: %w", domain.ErrorValidation)
	}

	return &TableGenerator{
		db:        db,
		tableName: tableName,
	}, nil
}

// Create issues create table if not exists with the column/type pairs zipped in order.
// Data types are literal DDL fragments supplied by the operator.
func (t *TableGenerator) Create(ctx context.Context, columns, dataTypes []string) error {
	query, err := t.CreateDDL(columns, dataTypes)
	if err != nil {
		return err
	}
	return WithTx(ctx, t.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query)
		if err != nil {
			return fmt.Errorf("create table %s error: %w", t.tableName, err)
		}
		return nil
	}, nil)
}

func (t *TableGenerator) CreateDDL(columns, dataTypes []string) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("table %s has no columns: %w", t.tableName, domain.ErrorValidation)
	}
	if len(columns) != len(dataTypes) {
		return "", fmt.Errorf("%d columns, %d data types: %w", len(columns), len(dataTypes), domain.ErrorValidation)
	}
	defs := make([]string, 0, len(columns))
	for i, column := range columns {
		if strings.TrimSpace(dataTypes[i]) == "" {
			return "", fmt.Errorf("column %s has no data type: %w", column, domain.ErrorValidation)
		}
		defs = append(defs, pq.QuoteIdentifier(column)+" "+dataTypes[i])
	}
	return fmt.Sprintf(CreateTableQuery, pq.QuoteIdentifier(t.tableName), strings.Join(defs, ", ")), nil
}

func (t *TableGenerator) Drop(ctx context.Context) error {
	return WithTx(ctx, t.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(DropTableQuery, pq.QuoteIdentifier(t.tableName)))
		if err != nil {
			return fmt.Errorf("unable to drop table %s: %w", t.tableName, err)
		}
		return nil
	}, nil)
}

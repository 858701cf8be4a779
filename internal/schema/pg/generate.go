package pg

import (
	"context"
	"fmt"
	"shopdb/internal/domain"
	"shopdb/internal/schema"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SchemaGenerator creates and drops the registry tables.
type SchemaGenerator struct {
	db       *sqlx.DB
	registry *schema.Registry
}

func NewSchemaGenerator(db *sqlx.DB, registry *schema.Registry) *SchemaGenerator {
	return &SchemaGenerator{
		db:       db,
		registry: registry,
	}
}

func (s *SchemaGenerator) Start(ctx context.Context) error {
	err := s.GenerateTypes(ctx)
	if err != nil {
		return err
	}
	err = s.GenerateSchema(ctx)
	if err != nil {
		return err
	}
	return nil
}

func (s *SchemaGenerator) GenerateTypes(ctx context.Context) error {
	err := WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, CreateEnumDDL(schema.GenderEnumName, domain.Genders))
		if err != nil {
			return fmt.Errorf("create enum error: %w", err)
		}
		return nil
	}, nil)
	if err != nil {
		return fmt.Errorf("generate types err: %w", err)
	}
	return nil
}

func (s *SchemaGenerator) GenerateSchema(ctx context.Context) error {
	err := WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, rt := range s.registry.Types() {
			_, err := tx.ExecContext(ctx, CreateTableDDL(rt))
			if err != nil {
				return fmt.Errorf("create table %s error: %w", rt.Table, err)
			}
		}
		return nil
	}, nil)
	if err != nil {
		return fmt.Errorf("generate err: %w", err)
	}
	return nil
}

// Drop removes the registry tables children first, then the enum types.
func (s *SchemaGenerator) Drop(ctx context.Context) error {
	return WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		tables := s.registry.Tables()
		for i := len(tables) - 1; i >= 0; i-- {
			_, err := tx.ExecContext(ctx, fmt.Sprintf(DropTableQuery, pq.QuoteIdentifier(tables[i])))
			if err != nil {
				return fmt.Errorf("drop table %s error: %w", tables[i], err)
			}
		}
		_, err := tx.ExecContext(ctx, fmt.Sprintf(DropEnumQuery, pq.QuoteIdentifier(schema.GenderEnumName)))
		if err != nil {
			return fmt.Errorf("drop enum error: %w", err)
		}
		return nil
	}, nil)
}

// Check verifies that every registry table exists in the public schema.
func (s *SchemaGenerator) Check(ctx context.Context) error {
	return WithTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.checkTablesExistenceTx(ctx, tx)
	}, nil)
}

func (s *SchemaGenerator) checkTablesExistenceTx(ctx context.Context, tx *sqlx.Tx) error {
	tables := s.registry.Tables()
	query, args, err :=
		squirrel.Select("count(*)").
			From("pg_tables").
			Where(squirrel.Eq{
				"schemaname": "public"},
			).
			Where(squirrel.Eq{
				"tablename": tables,
			}).PlaceholderFormat(squirrel.Dollar).
			ToSql()
	if err != nil {
		return err
	}
	var providedTablesCount int
	err = tx.GetContext(ctx, &providedTablesCount, query, args...)
	if err != nil {
		return fmt.Errorf("cannot select table names: %w", err)
	}
	if providedTablesCount != len(tables) {
		return fmt.Errorf("expected %d, got %d: %w", len(tables), providedTablesCount, domain.ErrorTablesDoMatchWithSchema)
	}
	return nil
}

func CreateEnumDDL(name string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, pq.QuoteLiteral(v))
	}
	return fmt.Sprintf(CreateEnumQuery, pq.QuoteIdentifier(name), strings.Join(quoted, ", "))
}

// CreateTableDDL renders the create statement for a registry record type.
func CreateTableDDL(rt *schema.RecordType) string {
	defs := make([]string, 0, len(rt.Columns))
	for _, c := range rt.Columns {
		def := pq.QuoteIdentifier(c.Name) + " " + sqlType(c)
		switch {
		case c.PrimaryKey:
			def += " primary key"
		case c.Required:
			def += " not null"
		}
		if c.References != nil {
			def += fmt.Sprintf(" references %s (%s)",
				pq.QuoteIdentifier(c.References.Table), pq.QuoteIdentifier(c.References.Column))
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf(CreateTableQuery, pq.QuoteIdentifier(rt.Table), strings.Join(defs, ",\n\t    "))
}

func sqlType(c schema.Column) string {
	if c.Type == domain.EnumColumn {
		return pq.QuoteIdentifier(c.SQLType)
	}
	return c.SQLType
}

package store

import (
	"context"
	"shopdb/internal/domain"
	"shopdb/internal/generator"
	"shopdb/internal/schema"
	"time"

	"github.com/shopspring/decimal"
)

type IStorage interface {
	IRecordStorage
	ITableStorage
	IGeneratorStorage
	IReportStorage
	Close() error
}

// IRecordStorage works on one registry table. Conditions are raw SQL predicates supplied by
// the operator and are inserted into the statement verbatim.
type IRecordStorage interface {
	InsertRecord(ctx context.Context, rt *schema.RecordType, columns []string, values []any) error
	SelectRecords(ctx context.Context, rt *schema.RecordType, columns []string, condition string) ([]domain.Row, error)
	FindRecords(ctx context.Context, rt *schema.RecordType, column string, filter domain.Filter) ([]domain.Row, error)
	UpdateFirst(ctx context.Context, rt *schema.RecordType, values map[string]any, condition string) (bool, error)
	DeleteFirst(ctx context.Context, rt *schema.RecordType, condition string) (bool, error)
}

type ITableStorage interface {
	CreateTable(ctx context.Context, table string, columns, dataTypes []string) error
	DropTable(ctx context.Context, table string) error
}

type IGeneratorStorage interface {
	GenerateRandomData(ctx context.Context, req generator.Request) (int64, error)
}

type IReportStorage interface {
	PaySystemsIncome(ctx context.Context, low, high decimal.Decimal) ([]domain.PaySystemIncome, error)
	CompanyOrders(ctx context.Context, from, to time.Time) ([]domain.CompanyOrders, error)
	TopOrders(ctx context.Context, company string, limit int) ([]domain.TopOrder, error)
}

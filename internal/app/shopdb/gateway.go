package shopdb

import (
	"context"
	"fmt"
	"shopdb/internal/domain"
	"shopdb/internal/generator"
	"shopdb/internal/metrics"
	"shopdb/internal/schema"
	"shopdb/internal/store"
	"shopdb/internal/utils"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TopOrdersLimit is the number of rows returned by the top orders report.
const TopOrdersLimit = 5

// Gateway is the operation boundary: it resolves tables through the registry, turns operator
// text into typed values and hands the work to the storage. Every failure is logged here once
// and returned to the caller.
type Gateway struct {
	storage  store.IStorage
	registry *schema.Registry
	logger   *zap.Logger
	metrics  metrics.IMetrics
}

func NewGateway(storage store.IStorage, registry *schema.Registry, logger *zap.Logger, m metrics.IMetrics) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop{}
	}
	return &Gateway{
		storage:  storage,
		registry: registry,
		logger:   logger,
		metrics:  m,
	}
}

// Tables lists the registry tables, parents first.
func (g *Gateway) Tables() []string {
	return g.registry.Tables()
}

// Columns lists the columns of a registry table in declaration order.
func (g *Gateway) Columns(table string) ([]string, error) {
	rt, err := g.registry.Resolve(table)
	if err != nil {
		return nil, err
	}
	return rt.ColumnNames(), nil
}

func (g *Gateway) Insert(ctx context.Context, table string, columns, values []string) error {
	op := g.begin("insert", zap.String("table", table), zap.Strings("columns", columns))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return op.done(err)
	}
	if len(columns) == 0 {
		return op.done(fmt.Errorf("no columns: %w", domain.ErrorValidation))
	}
	if len(columns) != len(values) {
		return op.done(fmt.Errorf("%d columns, %d values: %w", len(columns), len(values), domain.ErrorValidation))
	}
	args := make([]any, 0, len(values))
	for i, column := range columns {
		v, err := rt.Coerce(column, values[i])
		if err != nil {
			return op.done(err)
		}
		args = append(args, v)
	}
	return op.done(g.storage.InsertRecord(ctx, rt, columns, args))
}

// Select returns the projected rows; condition is a raw SQL predicate used verbatim.
func (g *Gateway) Select(ctx context.Context, table string, columns []string, condition string) ([]domain.Row, error) {
	op := g.begin("select", zap.String("table", table), zap.Strings("columns", columns), zap.String("condition", condition))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return nil, op.done(err)
	}
	rows, err := g.storage.SelectRecords(ctx, rt, columns, condition)
	if err != nil {
		return nil, op.done(err)
	}
	op.log.Debug("rows selected", zap.Int("count", len(rows)))
	return rows, op.done(nil)
}

func (g *Gateway) Find(ctx context.Context, table, column string, filter domain.Filter) ([]domain.Row, error) {
	op := g.begin("find", zap.String("table", table), zap.String("column", column), zap.String("kind", string(filter.Kind)))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return nil, op.done(err)
	}
	if _, err := rt.Column(column); err != nil {
		return nil, op.done(err)
	}
	filter, err = normalizeFilter(filter)
	if err != nil {
		return nil, op.done(err)
	}
	rows, err := g.storage.FindRecords(ctx, rt, column, filter)
	if err != nil {
		return nil, op.done(err)
	}
	return rows, op.done(nil)
}

// Update overwrites the given fields of the first row matching condition. An empty condition
// matches the first row of the table. (false, nil) means nothing matched.
func (g *Gateway) Update(ctx context.Context, table string, values map[string]string, condition string) (bool, error) {
	op := g.begin("update", zap.String("table", table), zap.String("condition", condition))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return false, op.done(err)
	}
	if len(values) == 0 {
		return false, op.done(fmt.Errorf("nothing to update: %w", domain.ErrorValidation))
	}
	set := make(map[string]any, len(values))
	for column, value := range values {
		v, err := rt.Coerce(column, value)
		if err != nil {
			return false, op.done(err)
		}
		set[column] = v
	}
	return op.matched(g.storage.UpdateFirst(ctx, rt, set, condition))
}

// Delete removes the first row matching condition, which must not be blank.
func (g *Gateway) Delete(ctx context.Context, table, condition string) (bool, error) {
	op := g.begin("delete", zap.String("table", table), zap.String("condition", condition))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return false, op.done(err)
	}
	if strings.TrimSpace(condition) == "" {
		return false, op.done(fmt.Errorf("delete needs a condition: %w", domain.ErrorInvalidArgument))
	}
	return op.matched(g.storage.DeleteFirst(ctx, rt, condition))
}

// CreateTable creates an arbitrary table. Data types are trusted DDL fragments.
func (g *Gateway) CreateTable(ctx context.Context, name string, columns, dataTypes []string) error {
	op := g.begin("create_table", zap.String("table", name), zap.Strings("columns", columns))
	return op.done(g.storage.CreateTable(ctx, name, columns, dataTypes))
}

func (g *Gateway) DropTable(ctx context.Context, name string) error {
	op := g.begin("drop_table", zap.String("table", name))
	return op.done(g.storage.DropTable(ctx, name))
}

// GenerateRandomData fills a registry table with rowCount synthetic rows in one statement.
// params holds one "low,high" token per column ("-" when the type takes none).
func (g *Gateway) GenerateRandomData(ctx context.Context, table string, columns, dataTypes, params []string, rowCount, textLen int) (int64, error) {
	op := g.begin("generate", zap.String("table", table), zap.Strings("columns", columns),
		zap.Strings("types", dataTypes), zap.Int("rows", rowCount))

	rt, err := g.registry.Resolve(table)
	if err != nil {
		return 0, op.done(err)
	}
	for _, column := range columns {
		if _, err := rt.WritableColumn(column); err != nil {
			return 0, op.done(err)
		}
	}
	req := generator.Request{
		Table:     rt.Table,
		Columns:   columns,
		DataTypes: make([]generator.DataType, 0, len(dataTypes)),
		Params:    make([]generator.Params, 0, len(params)),
		Rows:      rowCount,
		TextLen:   textLen,
	}
	for _, dt := range dataTypes {
		req.DataTypes = append(req.DataTypes, generator.DataType(strings.TrimSpace(dt)))
	}
	for _, p := range params {
		req.Params = append(req.Params, generator.ParseParams(p))
	}

	n, err := g.storage.GenerateRandomData(ctx, req)
	if err != nil {
		return 0, op.done(err)
	}
	op.log.Info("random rows inserted", zap.Int64("count", n))
	return n, op.done(nil)
}

// PaySystemsIncome sums orders with a sum in [low, high] per pay system.
func (g *Gateway) PaySystemsIncome(ctx context.Context, low, high string) ([]domain.PaySystemIncome, error) {
	op := g.begin("report_pay_systems", zap.String("low", low), zap.String("high", high))

	lo, err := parseAmount(low)
	if err != nil {
		return nil, op.done(err)
	}
	hi, err := parseAmount(high)
	if err != nil {
		return nil, op.done(err)
	}
	res, err := g.storage.PaySystemsIncome(ctx, lo, hi)
	if err != nil {
		return nil, op.done(err)
	}
	return res, op.done(nil)
}

// CompanyOrders counts orders dated within [from, to] per company.
func (g *Gateway) CompanyOrders(ctx context.Context, from, to string) ([]domain.CompanyOrders, error) {
	op := g.begin("report_companies", zap.String("from", from), zap.String("to", to))

	start, err := parseReportDate(from)
	if err != nil {
		return nil, op.done(err)
	}
	end, err := parseReportDate(to)
	if err != nil {
		return nil, op.done(err)
	}
	res, err := g.storage.CompanyOrders(ctx, start, end)
	if err != nil {
		return nil, op.done(err)
	}
	return res, op.done(nil)
}

// TopOrders returns the largest orders of the named company.
func (g *Gateway) TopOrders(ctx context.Context, company string) ([]domain.TopOrder, error) {
	op := g.begin("report_top_orders", zap.String("company", company))

	if strings.TrimSpace(company) == "" {
		return nil, op.done(fmt.Errorf("company name is empty: %w", domain.ErrorInvalidArgument))
	}
	res, err := g.storage.TopOrders(ctx, company, TopOrdersLimit)
	if err != nil {
		return nil, op.done(err)
	}
	return res, op.done(nil)
}

type operation struct {
	name    string
	started time.Time
	log     *zap.Logger
	metrics metrics.IMetrics
}

func (g *Gateway) begin(name string, fields ...zap.Field) *operation {
	fields = append([]zap.Field{
		zap.String("op_id", utils.NewOperationID()),
		zap.String("operation", name),
	}, fields...)
	return &operation{
		name:    name,
		started: time.Now(),
		log:     g.logger.With(fields...),
		metrics: g.metrics,
	}
}

func (o *operation) done(err error) error {
	elapsed := time.Since(o.started)
	if err != nil {
		o.log.Error("operation failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		o.metrics.ObserveOperation(o.name, metrics.ResultError, elapsed)
		return err
	}
	o.log.Debug("operation done", zap.Duration("elapsed", elapsed))
	o.metrics.ObserveOperation(o.name, metrics.ResultOK, elapsed)
	return nil
}

func (o *operation) matched(ok bool, err error) (bool, error) {
	if err != nil {
		return false, o.done(err)
	}
	if !ok {
		elapsed := time.Since(o.started)
		o.log.Info("no row matched", zap.Duration("elapsed", elapsed))
		o.metrics.ObserveOperation(o.name, metrics.ResultNoMatch, elapsed)
		return false, nil
	}
	return true, o.done(nil)
}

// normalizeFilter checks the bounds of range filters and rewrites them in the form the
// database parses regardless of driver.
func normalizeFilter(f domain.Filter) (domain.Filter, error) {
	switch f.Kind {
	case domain.NumberFilter:
		f.Low, f.High = strings.TrimSpace(f.Low), strings.TrimSpace(f.High)
		for _, bound := range []string{f.Low, f.High} {
			if _, err := strconv.ParseFloat(bound, 64); err != nil {
				return f, fmt.Errorf("number bound %q: %w", bound, domain.ErrorTypeCoercion)
			}
		}
	case domain.DateFilter:
		low, err := parseReportDate(f.Low)
		if err != nil {
			return f, err
		}
		high, err := parseReportDate(f.High)
		if err != nil {
			return f, err
		}
		f.Low, f.High = low.Format(time.DateOnly), high.Format(time.DateOnly)
	case domain.StringFilter, domain.BooleanFilter:
	default:
		return f, fmt.Errorf("search type %q: %w", f.Kind, domain.ErrorInvalidArgument)
	}
	return f, nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", v, domain.ErrorTypeCoercion)
	}
	return d, nil
}

func parseReportDate(v string) (time.Time, error) {
	t, err := schema.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %v: %w", v, err, domain.ErrorTypeCoercion)
	}
	return t, nil
}

package shopdb

import (
	"context"
	"errors"
	"shopdb/internal/domain"
	"shopdb/internal/generator"
	"shopdb/internal/metrics"
	"shopdb/internal/schema"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStorage struct {
	calls []string

	insertColumns []string
	insertValues  []any
	updateValues  map[string]any
	condition     string
	filter        domain.Filter
	request       generator.Request
	low, high     decimal.Decimal
	from, to      time.Time
	company       string
	limit         int

	rows    []domain.Row
	matched bool
	err     error
}

func (f *fakeStorage) InsertRecord(_ context.Context, _ *schema.RecordType, columns []string, values []any) error {
	f.calls = append(f.calls, "insert")
	f.insertColumns, f.insertValues = columns, values
	return f.err
}

func (f *fakeStorage) SelectRecords(_ context.Context, _ *schema.RecordType, _ []string, condition string) ([]domain.Row, error) {
	f.calls = append(f.calls, "select")
	f.condition = condition
	return f.rows, f.err
}

func (f *fakeStorage) FindRecords(_ context.Context, _ *schema.RecordType, _ string, filter domain.Filter) ([]domain.Row, error) {
	f.calls = append(f.calls, "find")
	f.filter = filter
	return f.rows, f.err
}

func (f *fakeStorage) UpdateFirst(_ context.Context, _ *schema.RecordType, values map[string]any, condition string) (bool, error) {
	f.calls = append(f.calls, "update")
	f.updateValues, f.condition = values, condition
	return f.matched, f.err
}

func (f *fakeStorage) DeleteFirst(_ context.Context, _ *schema.RecordType, condition string) (bool, error) {
	f.calls = append(f.calls, "delete")
	f.condition = condition
	return f.matched, f.err
}

func (f *fakeStorage) CreateTable(context.Context, string, []string, []string) error {
	f.calls = append(f.calls, "create_table")
	return f.err
}

func (f *fakeStorage) DropTable(context.Context, string) error {
	f.calls = append(f.calls, "drop_table")
	return f.err
}

func (f *fakeStorage) GenerateRandomData(_ context.Context, req generator.Request) (int64, error) {
	f.calls = append(f.calls, "generate")
	f.request = req
	return int64(req.Rows), f.err
}

func (f *fakeStorage) PaySystemsIncome(_ context.Context, low, high decimal.Decimal) ([]domain.PaySystemIncome, error) {
	f.calls = append(f.calls, "pay_systems")
	f.low, f.high = low, high
	return nil, f.err
}

func (f *fakeStorage) CompanyOrders(_ context.Context, from, to time.Time) ([]domain.CompanyOrders, error) {
	f.calls = append(f.calls, "companies")
	f.from, f.to = from, to
	return nil, f.err
}

func (f *fakeStorage) TopOrders(_ context.Context, company string, limit int) ([]domain.TopOrder, error) {
	f.calls = append(f.calls, "top_orders")
	f.company, f.limit = company, limit
	return nil, f.err
}

func (f *fakeStorage) Close() error { return nil }

type observation struct {
	operation string
	result    string
}

type recordingMetrics struct {
	observed []observation
}

func (r *recordingMetrics) ObserveOperation(operation, result string, _ time.Duration) {
	r.observed = append(r.observed, observation{operation, result})
}

func newTestGateway(s *fakeStorage) (*Gateway, *observer.ObservedLogs, *recordingMetrics) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := &recordingMetrics{}
	return NewGateway(s, schema.Default(), zap.New(core), m), logs, m
}

func TestGateway_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("coerces values in column order", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, m := newTestGateway(s)

		err := g.Insert(ctx, "tbl_order",
			[]string{"client_id", "date", "sum", "tags", "description"},
			[]string{"1", "2021-05-04", "99.5", "{a,b}", ""})
		require.NoError(t, err)

		assert.Equal(t, []any{
			int64(1),
			time.Date(2021, 5, 4, 0, 0, 0, 0, time.UTC),
			99.5,
			pq.StringArray{"a", "b"},
			nil,
		}, s.insertValues)
		assert.Equal(t, []observation{{"insert", metrics.ResultOK}}, m.observed)
	})

	t.Run("rejected before storage", func(t *testing.T) {
		tests := []struct {
			name    string
			table   string
			columns []string
			values  []string
			wantErr error
		}{
			{"unknown table", "tbl_invoice", []string{"id"}, []string{"1"}, domain.ErrorTableNotFound},
			{"count mismatch", "tbl_client", []string{"name", "age"}, []string{"Ann"}, domain.ErrorValidation},
			{"no columns", "tbl_client", nil, nil, domain.ErrorValidation},
			{"primary key", "tbl_client", []string{"id"}, []string{"7"}, domain.ErrorValidation},
			{"bad integer", "tbl_client", []string{"age"}, []string{"old"}, domain.ErrorTypeCoercion},
			{"bad enum", "tbl_client", []string{"gender"}, []string{"male"}, domain.ErrorTypeCoercion},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := &fakeStorage{}
				g, logs, m := newTestGateway(s)

				err := g.Insert(ctx, tt.table, tt.columns, tt.values)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.calls)
				assert.Equal(t, 1, logs.FilterMessage("operation failed").Len())
				assert.Equal(t, []observation{{"insert", metrics.ResultError}}, m.observed)
			})
		}
	})

	t.Run("constraint failure is logged once", func(t *testing.T) {
		s := &fakeStorage{err: domain.ErrorConstraint}
		g, logs, _ := newTestGateway(s)

		err := g.Insert(ctx, "tbl_company_client", []string{"company_id", "client_id"}, []string{"1", "2"})
		assert.ErrorIs(t, err, domain.ErrorConstraint)

		failed := logs.FilterLevelExact(zapcore.ErrorLevel).All()
		require.Len(t, failed, 1)
		assert.Equal(t, "insert", failed[0].ContextMap()["operation"])
		assert.NotEmpty(t, failed[0].ContextMap()["op_id"])
	})
}

func TestGateway_Select(t *testing.T) {
	s := &fakeStorage{rows: []domain.Row{{int64(1), "Ann"}}}
	g, _, _ := newTestGateway(s)

	rows, err := g.Select(context.Background(), "tbl_client", []string{"id", "name"}, "age > 18")
	require.NoError(t, err)
	assert.Equal(t, s.rows, rows)
	assert.Equal(t, "age > 18", s.condition)

	_, err = g.Select(context.Background(), "client", nil, "")
	assert.ErrorIs(t, err, domain.ErrorTableNotFound)
}

func TestGateway_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("date bounds are normalized", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.Find(ctx, "tbl_order", "date", domain.Filter{Kind: domain.DateFilter, Low: "2020/01/01", High: "2020-12-31"})
		require.NoError(t, err)
		assert.Equal(t, domain.Filter{Kind: domain.DateFilter, Low: "2020-01-01", High: "2020-12-31"}, s.filter)
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name    string
			column  string
			filter  domain.Filter
			wantErr error
		}{
			{"unknown column", "price", domain.Filter{Kind: domain.NumberFilter, Low: "1", High: "2"}, domain.ErrorValidation},
			{"bad number", "sum", domain.Filter{Kind: domain.NumberFilter, Low: "one", High: "2"}, domain.ErrorTypeCoercion},
			{"bad date", "date", domain.Filter{Kind: domain.DateFilter, Low: "yesterday", High: "2020-01-01"}, domain.ErrorTypeCoercion},
			{"unknown kind", "sum", domain.Filter{Kind: "fuzzy"}, domain.ErrorInvalidArgument},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := &fakeStorage{}
				g, _, _ := newTestGateway(s)

				_, err := g.Find(ctx, "tbl_order", tt.column, tt.filter)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.calls)
			})
		}
	})
}

func TestGateway_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("first match updated", func(t *testing.T) {
		s := &fakeStorage{matched: true}
		g, _, m := newTestGateway(s)

		ok, err := g.Update(ctx, "tbl_client", map[string]string{"age": "31", "gender": "Other"}, "name = 'Ann'")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"age": int64(31), "gender": "Other"}, s.updateValues)
		assert.Equal(t, []observation{{"update", metrics.ResultOK}}, m.observed)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		s := &fakeStorage{}
		g, logs, m := newTestGateway(s)

		ok, err := g.Update(ctx, "tbl_client", map[string]string{"age": "31"}, "1 = 0")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, logs.FilterMessage("no row matched").Len())
		assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		assert.Equal(t, []observation{{"update", metrics.ResultNoMatch}}, m.observed)
	})

	t.Run("empty condition reaches storage", func(t *testing.T) {
		s := &fakeStorage{matched: true}
		g, _, _ := newTestGateway(s)

		ok, err := g.Update(ctx, "tbl_pay_system", map[string]string{"website": "pay.example"}, "")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"update"}, s.calls)
	})

	t.Run("nothing to set", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.Update(ctx, "tbl_client", nil, "id = 1")
		assert.ErrorIs(t, err, domain.ErrorValidation)
		assert.Empty(t, s.calls)
	})

	t.Run("storage failure", func(t *testing.T) {
		s := &fakeStorage{err: domain.ErrorConnection}
		g, _, m := newTestGateway(s)

		ok, err := g.Update(ctx, "tbl_client", map[string]string{"age": "31"}, "id = 1")
		assert.ErrorIs(t, err, domain.ErrorConnection)
		assert.False(t, ok)
		assert.Equal(t, []observation{{"update", metrics.ResultError}}, m.observed)
	})
}

func TestGateway_Delete(t *testing.T) {
	ctx := context.Background()

	for _, condition := range []string{"", "   ", "\t"} {
		s := &fakeStorage{matched: true}
		g, _, _ := newTestGateway(s)

		ok, err := g.Delete(ctx, "tbl_order", condition)
		assert.ErrorIs(t, err, domain.ErrorInvalidArgument)
		assert.False(t, ok)
		assert.Empty(t, s.calls, "no statement for condition %q", condition)
	}

	s := &fakeStorage{matched: true}
	g, _, _ := newTestGateway(s)
	ok, err := g.Delete(ctx, "tbl_order", "sum > 100")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sum > 100", s.condition)
}

func TestGateway_Tables(t *testing.T) {
	ctx := context.Background()
	s := &fakeStorage{}
	g, _, _ := newTestGateway(s)

	assert.Equal(t, []string{"tbl_client", "tbl_company", "tbl_pay_system", "tbl_company_client", "tbl_order"}, g.Tables())

	columns, err := g.Columns("tbl_pay_system")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "website"}, columns)
	_, err = g.Columns("tbl_invoice")
	assert.ErrorIs(t, err, domain.ErrorTableNotFound)

	require.NoError(t, g.CreateTable(ctx, "tbl_note", []string{"id", "body"}, []string{"serial", "text"}))
	require.NoError(t, g.DropTable(ctx, "tbl_note"))
	assert.Equal(t, []string{"create_table", "drop_table"}, s.calls)

	s.err = errors.New("permission denied")
	assert.Error(t, g.DropTable(ctx, "tbl_note"))
}

func TestGateway_GenerateRandomData(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the request", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		n, err := g.GenerateRandomData(ctx, "tbl_order",
			[]string{"client_id", "description", "tags"},
			[]string{"fk_int", "text", " array_text"},
			[]string{"tbl_client,id", "97,122", "97, 122"},
			10, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(10), n)
		assert.Equal(t, generator.Request{
			Table:     "tbl_order",
			Columns:   []string{"client_id", "description", "tags"},
			DataTypes: []generator.DataType{generator.ForeignKey, generator.Text, generator.ArrayText},
			Params:    []generator.Params{{Low: "tbl_client", High: "id"}, {Low: "97", High: "122"}, {Low: "97", High: "122"}},
			Rows:      10,
			TextLen:   5,
		}, s.request)
	})

	t.Run("unknown column", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.GenerateRandomData(ctx, "tbl_order", []string{"price"}, []string{"float"}, []string{"1,2"}, 10, 5)
		assert.ErrorIs(t, err, domain.ErrorValidation)
		assert.Empty(t, s.calls)
	})

	t.Run("unknown table", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.GenerateRandomData(ctx, "tbl_invoice", []string{"sum"}, []string{"float"}, []string{"1,2"}, 10, 5)
		assert.ErrorIs(t, err, domain.ErrorTableNotFound)
	})
}

func TestGateway_Reports(t *testing.T) {
	ctx := context.Background()

	t.Run("pay systems income", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.PaySystemsIncome(ctx, "100", " 2500.75 ")
		require.NoError(t, err)
		assert.True(t, s.low.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.high.Equal(decimal.RequireFromString("2500.75")))

		_, err = g.PaySystemsIncome(ctx, "a lot", "1")
		assert.ErrorIs(t, err, domain.ErrorTypeCoercion)
	})

	t.Run("company orders", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.CompanyOrders(ctx, "2020-01-01", "2020/06/30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2020, 6, 30, 0, 0, 0, 0, time.UTC), s.to)

		_, err = g.CompanyOrders(ctx, "2020-01-01", "June")
		assert.ErrorIs(t, err, domain.ErrorTypeCoercion)
	})

	t.Run("top orders", func(t *testing.T) {
		s := &fakeStorage{}
		g, _, _ := newTestGateway(s)

		_, err := g.TopOrders(ctx, "Acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme", s.company)
		assert.Equal(t, TopOrdersLimit, s.limit)

		_, err = g.TopOrders(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrorInvalidArgument)
	})
}

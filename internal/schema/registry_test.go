package schema

import (
	"shopdb/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		table string
		want  string
		ok    bool
	}{
		{table: "tbl_client", want: "Client", ok: true},
		{table: "tbl_company", want: "Company", ok: true},
		{table: "tbl_company_client", want: "CompanyClient", ok: true},
		{table: "tbl_order", want: "Order", ok: true},
		{table: "tbl_pay_system", want: "PaySystem", ok: true},
		{table: "tbl_PAY_SYSTEM", ok: false},
		{table: "tbl_Client", ok: false},
		{table: "tbl_company_Client", ok: false},
		{table: "client", ok: false},
		{table: "tbl_", ok: false},
		{table: "tbl_pay__system", ok: false},
		{table: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got, ok := TypeName(tt.table)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := Default()

	t.Run("resolves every known table", func(t *testing.T) {
		want := map[string]string{
			"tbl_client":         "Client",
			"tbl_company":        "Company",
			"tbl_company_client": "CompanyClient",
			"tbl_order":          "Order",
			"tbl_pay_system":     "PaySystem",
		}
		for table, name := range want {
			rt, err := r.Resolve(table)
			require.NoError(t, err)
			assert.Equal(t, name, rt.Name)
			assert.Equal(t, table, rt.Table)

			again, err := r.Resolve(table)
			require.NoError(t, err)
			assert.Same(t, rt, again)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		for _, table := range []string{"tbl_invoice", "orders", "tbl_order_", "", "tbl_CLIENT", "tbl_Pay_System"} {
			rt, err := r.Resolve(table)
			assert.Nil(t, rt)
			assert.ErrorIs(t, err, domain.ErrorTableNotFound)
		}
	})
}

func TestRegistry_Tables(t *testing.T) {
	tables := Default().Tables()

	assert.Equal(t, []string{"tbl_client", "tbl_company", "tbl_pay_system", "tbl_company_client", "tbl_order"}, tables)

	tables[0] = "mutated"
	assert.Equal(t, "tbl_client", Default().Tables()[0])
}

func TestNewRegistry(t *testing.T) {
	t.Run("rejects mismatched type name", func(t *testing.T) {
		_, err := NewRegistry(&RecordType{Name: "Customer", Table: "tbl_client"})
		assert.ErrorIs(t, err, domain.ErrorValidation)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		rt := &RecordType{Name: "Client", Table: "tbl_client"}
		_, err := NewRegistry(rt, rt)
		assert.ErrorIs(t, err, domain.ErrorValidation)
	})
}

func TestRecordType_WritableColumn(t *testing.T) {
	rt, err := Default().Resolve("tbl_order")
	require.NoError(t, err)

	c, err := rt.WritableColumn("sum")
	require.NoError(t, err)
	assert.Equal(t, domain.FloatColumn, c.Type)
	assert.True(t, c.Required)

	_, err = rt.WritableColumn("id")
	assert.ErrorIs(t, err, domain.ErrorValidation)

	_, err = rt.WritableColumn("price")
	assert.ErrorIs(t, err, domain.ErrorValidation)
}

package schema

import (
	"shopdb/internal/domain"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Coerce(t *testing.T) {
	order, err := Default().Resolve("tbl_order")
	require.NoError(t, err)
	client, err := Default().Resolve("tbl_client")
	require.NoError(t, err)

	tests := []struct {
		name    string
		rt      *RecordType
		column  string
		value   string
		want    any
		wantErr error
	}{
		{name: "integer", rt: order, column: "client_id", value: "42", want: int64(42)},
		{name: "integer upper bound", rt: client, column: "age", value: "2147483647", want: int64(2147483647)},
		{name: "integer overflow", rt: client, column: "age", value: "3000000000", wantErr: domain.ErrorTypeCoercion},
		{name: "bad integer", rt: order, column: "client_id", value: "forty", wantErr: domain.ErrorTypeCoercion},
		{name: "float", rt: order, column: "sum", value: "19.5", want: 19.5},
		{name: "infinite float", rt: order, column: "sum", value: "Inf", wantErr: domain.ErrorTypeCoercion},
		{name: "date", rt: order, column: "date", value: "2020-03-01", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "slashed date", rt: order, column: "date", value: "2020/03/01", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "bad date", rt: order, column: "date", value: "01.03.2020", wantErr: domain.ErrorTypeCoercion},
		{name: "required empty", rt: order, column: "date", value: "", wantErr: domain.ErrorValidation},
		{name: "nullable empty", rt: order, column: "description", value: "", want: nil},
		{name: "text", rt: order, column: "description", value: "gift", want: "gift"},
		{name: "array literal", rt: order, column: "tags", value: `{a,"b c"}`, want: pq.StringArray{"a", "b c"}},
		{name: "comma list", rt: order, column: "tags", value: "a, b", want: pq.StringArray{"a", "b"}},
		{name: "enum", rt: client, column: "gender", value: "Female", want: "Female"},
		{name: "enum mismatch", rt: client, column: "gender", value: "female", wantErr: domain.ErrorTypeCoercion},
		{name: "primary key", rt: client, column: "id", value: "1", wantErr: domain.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rt.Coerce(tt.column, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

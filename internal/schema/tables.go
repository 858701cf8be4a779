package schema

import "shopdb/internal/domain"

const GenderEnumName = "gender_enum"

var defaultRegistry = mustRegistry(
	&RecordType{
		Name:  "Client",
		Table: "tbl_client",
		Columns: []Column{
			{Name: "id", Type: domain.IntegerColumn, SQLType: "serial", PrimaryKey: true},
			{Name: "name", Type: domain.TextColumn, SQLType: "varchar(64)", Required: true},
			{Name: "age", Type: domain.IntegerColumn, SQLType: "integer"},
			{Name: "gender", Type: domain.EnumColumn, SQLType: GenderEnumName, Options: domain.Genders},
		},
	},
	&RecordType{
		Name:  "Company",
		Table: "tbl_company",
		Columns: []Column{
			{Name: "id", Type: domain.IntegerColumn, SQLType: "serial", PrimaryKey: true},
			{Name: "name", Type: domain.TextColumn, SQLType: "varchar(64)", Required: true},
			{Name: "owner", Type: domain.TextColumn, SQLType: "varchar(64)"},
			{Name: "country", Type: domain.TextColumn, SQLType: "varchar(64)", Required: true},
		},
	},
	&RecordType{
		Name:  "PaySystem",
		Table: "tbl_pay_system",
		Columns: []Column{
			{Name: "id", Type: domain.IntegerColumn, SQLType: "serial", PrimaryKey: true},
			{Name: "name", Type: domain.TextColumn, SQLType: "varchar(64)", Required: true},
			{Name: "website", Type: domain.TextColumn, SQLType: "varchar(64)"},
		},
	},
	&RecordType{
		Name:  "CompanyClient",
		Table: "tbl_company_client",
		Columns: []Column{
			{Name: "id", Type: domain.IntegerColumn, SQLType: "serial", PrimaryKey: true},
			{Name: "company_id", Type: domain.IntegerColumn, SQLType: "integer", Required: true,
				References: &ForeignKey{Table: "tbl_company", Column: "id"}},
			{Name: "client_id", Type: domain.IntegerColumn, SQLType: "integer", Required: true,
				References: &ForeignKey{Table: "tbl_client", Column: "id"}},
		},
	},
	&RecordType{
		Name:  "Order",
		Table: "tbl_order",
		Columns: []Column{
			{Name: "id", Type: domain.IntegerColumn, SQLType: "serial", PrimaryKey: true},
			{Name: "client_id", Type: domain.IntegerColumn, SQLType: "integer", Required: true,
				References: &ForeignKey{Table: "tbl_client", Column: "id"}},
			{Name: "company_id", Type: domain.IntegerColumn, SQLType: "integer", Required: true,
				References: &ForeignKey{Table: "tbl_company", Column: "id"}},
			{Name: "pay_system_id", Type: domain.IntegerColumn, SQLType: "integer", Required: true,
				References: &ForeignKey{Table: "tbl_pay_system", Column: "id"}},
			{Name: "description", Type: domain.TextColumn, SQLType: "varchar(256)"},
			{Name: "date", Type: domain.DateColumn, SQLType: "date", Required: true},
			{Name: "sum", Type: domain.FloatColumn, SQLType: "double precision", Required: true},
			{Name: "tags", Type: domain.TextArrayColumn, SQLType: "text[]"},
		},
	},
)

// Default returns the registry of the five shop tables.
func Default() *Registry {
	return defaultRegistry
}

func mustRegistry(types ...*RecordType) *Registry {
	r, err := NewRegistry(types...)
	if err != nil {
		panic(err)
	}
	return r
}

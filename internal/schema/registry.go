package schema

import (
	"fmt"
	"shopdb/internal/domain"
	"strings"
	"unicode"
	"unicode/utf8"
)

const tablePrefix = "tbl_"

type ForeignKey struct {
	Table  string
	Column string
}

type Column struct {
	Name       string
	Type       domain.ColumnType
	SQLType    string
	Required   bool
	PrimaryKey bool
	References *ForeignKey
	Options    []string
}

// RecordType describes the rows of one registry table.
type RecordType struct {
	Name    string
	Table   string
	Columns []Column
}

func (r *RecordType) Column(name string) (Column, error) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("column %q of %s: %w", name, r.Table, domain.ErrorValidation)
}

func (r *RecordType) ColumnNames() []string {
	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.Name)
	}
	return names
}

// WritableColumn resolves a column that callers may assign; primary keys are engine-assigned.
func (r *RecordType) WritableColumn(name string) (Column, error) {
	c, err := r.Column(name)
	if err != nil {
		return Column{}, err
	}
	if c.PrimaryKey {
		return Column{}, fmt.Errorf("primary key %s.%s is not writable: %w", r.Table, name, domain.ErrorValidation)
	}
	return c, nil
}

type Registry struct {
	types  map[string]*RecordType
	tables []string
}

// NewRegistry indexes record types by type name. Types must be given parents first and each
// table name must map back to its type name.
func NewRegistry(types ...*RecordType) (*Registry, error) {
	r := &Registry{
		types:  make(map[string]*RecordType, len(types)),
		tables: make([]string, 0, len(types)),
	}
	for _, rt := range types {
		name, ok := TypeName(rt.Table)
		if !ok || name != rt.Name {
			return nil, fmt.Errorf("table %s does not map to type %s: %w", rt.Table, rt.Name, domain.ErrorValidation)
		}
		if _, dup := r.types[name]; dup {
			return nil, fmt.Errorf("type %s registered twice: %w", name, domain.ErrorValidation)
		}
		r.types[name] = rt
		r.tables = append(r.tables, rt.Table)
	}
	return r, nil
}

func (r *Registry) Resolve(table string) (*RecordType, error) {
	name, ok := TypeName(table)
	if !ok {
		return nil, fmt.Errorf("%q: %w", table, domain.ErrorTableNotFound)
	}
	rt, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", table, domain.ErrorTableNotFound)
	}
	return rt, nil
}

// Tables returns table names in registration order, parents before children.
func (r *Registry) Tables() []string {
	res := make([]string, len(r.tables))
	copy(res, r.tables)
	return res
}

func (r *Registry) Types() []*RecordType {
	res := make([]*RecordType, 0, len(r.tables))
	for _, table := range r.tables {
		rt, _ := r.Resolve(table)
		res = append(res, rt)
	}
	return res
}

// TypeName turns tbl_company_client into CompanyClient. Only lowercase segments are accepted,
// so every type name has exactly one table name.
func TypeName(table string) (string, bool) {
	if !strings.HasPrefix(table, tablePrefix) {
		return "", false
	}
	segments := strings.Split(strings.TrimPrefix(table, tablePrefix), "_")
	var b strings.Builder
	for _, seg := range segments {
		if seg == "" || seg != strings.ToLower(seg) {
			return "", false
		}
		b.WriteString(capitalize(seg))
	}
	return b.String(), true
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

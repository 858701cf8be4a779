package domain

type DriverType int

const (
	Postgres DriverType = iota + 1
	Pgx
)

// DriverNameToType maps config driver names to the sql driver used to open the pool.
// Postgres is served by lib/pq, Pgx by pgx/v5/stdlib.
var DriverNameToType = map[string]DriverType{
	"pg":         Postgres,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"postgre":    Postgres,
	"pgx":        Pgx,
}

var DriverTypeToSqlName = map[DriverType]string{
	Postgres: "postgres",
	Pgx:      "pgx",
}

type ColumnType string

const (
	IntegerColumn   ColumnType = "integer"
	FloatColumn     ColumnType = "float"
	TextColumn      ColumnType = "text"
	EnumColumn      ColumnType = "enum"
	DateColumn      ColumnType = "date"
	TextArrayColumn ColumnType = "text_array"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

var Genders = []string{string(Male), string(Female), string(Other)}

type FilterKind string

const (
	NumberFilter  FilterKind = "number"
	StringFilter  FilterKind = "string"
	BooleanFilter FilterKind = "boolean"
	DateFilter    FilterKind = "date"
)

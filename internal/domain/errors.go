package domain

import "errors"

var (
	ErrorUnknownDriverName = errors.New("provided driver name not found")
)

var (
	ErrorConnection      = errors.New("cannot reach database")
	ErrorTableNotFound   = errors.New("table not found")
	ErrorValidation      = errors.New("invalid input")
	ErrorTypeCoercion    = errors.New("value cannot be converted to column type")
	ErrorConstraint      = errors.New("rejected by database constraint")
	ErrorUnsupportedType = errors.New("unsupported data type")
	ErrorInvalidArgument = errors.New("invalid argument")
)

var (
	ErrorTablesDoMatchWithSchema = errors.New("provided table names do not match with tables in actual schema")
)

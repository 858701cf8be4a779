// Package generator builds the single INSERT ... SELECT statement that fills a table with
// synthetic rows. Each column gets a SQL expression chosen by its data type; bounds are bound
// as parameters and identifiers are quoted.
package generator

import (
	"fmt"
	"shopdb/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type DataType string

const (
	Int        DataType = "int"
	Float      DataType = "float"
	Bool       DataType = "bool"
	Text       DataType = "text"
	ArrayText  DataType = "array_text"
	Date       DataType = "date"
	Time       DataType = "time"
	Timestamp  DataType = "timestamp"
	ForeignKey DataType = "fk_int"
)

// ArrayLength is the element count of every generated array_text value.
const ArrayLength = 10

const seriesAlias = "gs(n)"

var (
	dateLayouts      = []string{time.DateOnly, "2006/01/02"}
	timeLayouts      = []string{time.TimeOnly, "15:04"}
	timestampLayouts = []string{time.DateTime, "2006-01-02 15:04", "2006/01/02 15:04:05", time.DateOnly}
)

// Params is the pair of bounds for one column: min/max, or parent table/column for fk_int.
type Params struct {
	Low  string
	High string
}

// ParseParams splits a "low,high" token. "-" and "" stand for no parameters.
func ParseParams(token string) Params {
	token = strings.TrimSpace(token)
	if token == "" || token == "-" {
		return Params{}
	}
	low, high, _ := strings.Cut(token, ",")
	return Params{Low: strings.TrimSpace(low), High: strings.TrimSpace(high)}
}

type Request struct {
	Table     string
	Columns   []string
	DataTypes []DataType
	Params    []Params
	Rows      int
	TextLen   int
}

func (r Request) Validate() error {
	if len(r.Columns) == 0 {
		return fmt.Errorf("no columns: %w", domain.ErrorValidation)
	}
	if len(r.Columns) != len(r.DataTypes) || len(r.Columns) != len(r.Params) {
		return fmt.Errorf("%d columns, %d data types, %d parameters: %w",
			len(r.Columns), len(r.DataTypes), len(r.Params), domain.ErrorValidation)
	}
	if r.Rows < 1 {
		return fmt.Errorf("row count %d: %w", r.Rows, domain.ErrorInvalidArgument)
	}
	return nil
}

// Build renders the statement and its arguments without touching the database.
func Build(r Request) (string, []any, error) {
	if err := r.Validate(); err != nil {
		return "", nil, err
	}

	sel := squirrel.Select().From(fmt.Sprintf("generate_series(1, %d) as %s", r.Rows, seriesAlias))
	columns := make([]string, 0, len(r.Columns))
	for i, column := range r.Columns {
		expr, err := columnExpr(r.DataTypes[i], r.Params[i], r.TextLen)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", column, err)
		}
		sel = sel.Column(expr)
		columns = append(columns, pq.QuoteIdentifier(column))
	}

	return squirrel.
		Insert(pq.QuoteIdentifier(r.Table)).
		Columns(columns...).
		Select(sel).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func columnExpr(dt DataType, p Params, textLen int) (squirrel.Sqlizer, error) {
	switch dt {
	case Int:
		low, high, err := intBounds(p)
		if err != nil {
			return nil, err
		}
		return intExpr(low, high), nil
	case Float:
		low, high, err := floatBounds(p)
		if err != nil {
			return nil, err
		}
		return squirrel.Expr("random() * (?::float8 - ?::float8) + ?::float8", high, low, low), nil
	case Bool:
		return squirrel.Expr("(random() < 0.5)"), nil
	case Text:
		return textExpr(p, textLen)
	case ArrayText:
		elems := make([]squirrel.Sqlizer, 0, ArrayLength)
		for i := 0; i < ArrayLength; i++ {
			e, err := textExpr(p, textLen)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return joinExpr("ARRAY[", ", ", "]", elems)
	case Date:
		low, high, err := calendarBounds(p, dateLayouts)
		if err != nil {
			return nil, err
		}
		days := int64(high.Sub(low) / (24 * time.Hour))
		return squirrel.Expr("(?::date + floor(random() * (?::int + 1))::int)",
			low.Format(time.DateOnly), days), nil
	case Time:
		low, high, err := calendarBounds(p, timeLayouts)
		if err != nil {
			return nil, err
		}
		seconds := int64(high.Sub(low) / time.Second)
		return squirrel.Expr("(?::time + floor(random() * (?::int + 1)) * interval '1 second')",
			low.Format(time.TimeOnly), seconds), nil
	case Timestamp:
		low, high, err := calendarBounds(p, timestampLayouts)
		if err != nil {
			return nil, err
		}
		// least() keeps float rounding of random() near 1 from stepping past max on long spans.
		seconds := int64(high.Sub(low) / time.Second)
		return squirrel.Expr("(?::timestamp + least(floor(random() * (?::bigint + 1)), ?::bigint) * interval '1 second')",
			low.Format(time.DateTime), seconds, seconds), nil
	case ForeignKey:
		if err := needBounds(p); err != nil {
			return nil, err
		}
		// Referencing the series row makes the subquery correlated, so a parent value is drawn
		// for every generated row instead of once per statement.
		return squirrel.Expr(fmt.Sprintf("(SELECT %s FROM %s WHERE gs.n IS NOT NULL ORDER BY random() LIMIT 1)",
			pq.QuoteIdentifier(p.High), pq.QuoteIdentifier(p.Low))), nil
	default:
		return nil, fmt.Errorf("%q: %w", dt, domain.ErrorUnsupportedType)
	}
}

func intExpr(low, high int64) squirrel.Sqlizer {
	return squirrel.Expr("floor(random() * (?::int - ?::int + 1) + ?::int)::integer", high, low, low)
}

func textExpr(p Params, textLen int) (squirrel.Sqlizer, error) {
	if textLen < 1 {
		return nil, fmt.Errorf("text length %d: %w", textLen, domain.ErrorInvalidArgument)
	}
	low, high, err := intBounds(p)
	if err != nil {
		return nil, err
	}
	if low < 1 || high > 0x10FFFF {
		return nil, fmt.Errorf("code points [%d,%d] outside [1,1114111]: %w", low, high, domain.ErrorValidation)
	}
	chars := make([]squirrel.Sqlizer, 0, textLen)
	for i := 0; i < textLen; i++ {
		chars = append(chars, squirrel.Expr("chr(floor(random() * (?::int - ?::int + 1) + ?::int)::int)", high, low, low))
	}
	return joinExpr("", " || ", "", chars)
}

func joinExpr(prefix, sep, suffix string, parts []squirrel.Sqlizer) (squirrel.Sqlizer, error) {
	sqls := make([]string, 0, len(parts))
	var args []any
	for _, part := range parts {
		s, a, err := part.ToSql()
		if err != nil {
			return nil, err
		}
		sqls = append(sqls, s)
		args = append(args, a...)
	}
	return squirrel.Expr(prefix+strings.Join(sqls, sep)+suffix, args...), nil
}

func needBounds(p Params) error {
	if p.Low == "" || p.High == "" {
		return fmt.Errorf("expected two parameters, got %q,%q: %w", p.Low, p.High, domain.ErrorTypeCoercion)
	}
	return nil
}

func intBounds(p Params) (int64, int64, error) {
	if err := needBounds(p); err != nil {
		return 0, 0, err
	}
	low, err := strconv.ParseInt(p.Low, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("min %q: %w", p.Low, domain.ErrorTypeCoercion)
	}
	high, err := strconv.ParseInt(p.High, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("max %q: %w", p.High, domain.ErrorTypeCoercion)
	}
	if low > high {
		return 0, 0, fmt.Errorf("min %d > max %d: %w", low, high, domain.ErrorValidation)
	}
	return low, high, nil
}

func floatBounds(p Params) (float64, float64, error) {
	if err := needBounds(p); err != nil {
		return 0, 0, err
	}
	low, err := strconv.ParseFloat(p.Low, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("min %q: %w", p.Low, domain.ErrorTypeCoercion)
	}
	high, err := strconv.ParseFloat(p.High, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("max %q: %w", p.High, domain.ErrorTypeCoercion)
	}
	if low > high {
		return 0, 0, fmt.Errorf("min %g > max %g: %w", low, high, domain.ErrorValidation)
	}
	return low, high, nil
}

// calendarBounds parses date, time or timestamp bounds. Both must be whole seconds so that
// every second of [min, max] is reachable.
func calendarBounds(p Params, layouts []string) (time.Time, time.Time, error) {
	if err := needBounds(p); err != nil {
		return time.Time{}, time.Time{}, err
	}
	low, err := parseCalendar(p.Low, layouts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("min %q: %w", p.Low, domain.ErrorTypeCoercion)
	}
	high, err := parseCalendar(p.High, layouts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("max %q: %w", p.High, domain.ErrorTypeCoercion)
	}
	if low.Nanosecond() != 0 || high.Nanosecond() != 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("bounds %q,%q are not whole seconds: %w", p.Low, p.High, domain.ErrorValidation)
	}
	if low.After(high) {
		return time.Time{}, time.Time{}, fmt.Errorf("min %q > max %q: %w", p.Low, p.High, domain.ErrorValidation)
	}
	return low, high, nil
}

// parseCalendar also reads the date/time form with a slash between date and time.
func parseCalendar(v string, layouts []string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
		if date, clock, ok := strings.Cut(v, "/"); ok && len(date) == len(time.DateOnly) {
			if t, err = time.Parse(layout, date+" "+clock); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, err
}

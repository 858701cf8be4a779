package schema

import (
	"fmt"
	"math"
	"shopdb/internal/domain"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

// Coerce converts operator text into the Go value bound for the column.
// Empty input is NULL for nullable columns.
func (c Column) Coerce(value string) (any, error) {
	if value == "" {
		if c.Required {
			return nil, fmt.Errorf("%s is required: %w", c.Name, domain.ErrorValidation)
		}
		return nil, nil
	}

	switch c.Type {
	case domain.IntegerColumn:
		// integer columns are int4 in the engine.
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, coercionError(c, value, err)
		}
		return v, nil
	case domain.FloatColumn:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, coercionError(c, value, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, coercionError(c, value, fmt.Errorf("not a finite number"))
		}
		return v, nil
	case domain.TextColumn:
		return value, nil
	case domain.EnumColumn:
		if !slices.Contains(c.Options, value) {
			return nil, coercionError(c, value, fmt.Errorf("expected one of %s", strings.Join(c.Options, ", ")))
		}
		return value, nil
	case domain.DateColumn:
		t, err := ParseDate(value)
		if err != nil {
			return nil, coercionError(c, value, err)
		}
		return t, nil
	case domain.TextArrayColumn:
		return parseTextArray(c, value)
	default:
		return nil, coercionError(c, value, fmt.Errorf("column type %q", c.Type))
	}
}

// ParseDate reads a calendar date written as YYYY-MM-DD or YYYY/MM/DD.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD")
}

func (r *RecordType) Coerce(column, value string) (any, error) {
	c, err := r.WritableColumn(column)
	if err != nil {
		return nil, err
	}
	return c.Coerce(value)
}

// parseTextArray accepts a postgres array literal ({a,"b c"}) or a plain comma separated list.
func parseTextArray(c Column, value string) (pq.StringArray, error) {
	if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		var arr pq.StringArray
		if err := arr.Scan(value); err != nil {
			return nil, coercionError(c, value, err)
		}
		return arr, nil
	}
	parts := strings.Split(value, ",")
	arr := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, strings.TrimSpace(p))
	}
	return arr, nil
}

func coercionError(c Column, value string, cause error) error {
	return fmt.Errorf("%s=%q (%s): %v: %w", c.Name, value, c.Type, cause, domain.ErrorTypeCoercion)
}

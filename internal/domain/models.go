package domain

import "github.com/shopspring/decimal"

// Row is one projected result tuple, values in the order the columns were requested.
type Row []any

// Filter is a typed search over a single column. Low and High bound number and date
// searches, Value carries the substring or boolean.
type Filter struct {
	Kind  FilterKind
	Low   string
	High  string
	Value string
}

type PaySystemIncome struct {
	ID         int64           `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	OrderCount int64           `json:"order_count" db:"order_count"`
	TotalSum   decimal.Decimal `json:"total_sum" db:"total_sum"`
}

type CompanyOrders struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	OrderCount int64  `json:"order_count" db:"order_count"`
}

type TopOrder struct {
	OrderID int64           `json:"order_id" db:"order_id"`
	Sum     decimal.Decimal `json:"sum" db:"sum"`
}

package storepg

import (
	"context"
	"fmt"
	"shopdb/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// PaySystemsIncome binds the bounds as decimal text so that neither driver rounds them.
func (s *Storage) PaySystemsIncome(ctx context.Context, low, high decimal.Decimal) ([]domain.PaySystemIncome, error) {
	res := make([]domain.PaySystemIncome, 0)
	err := s.db.SelectContext(ctx, &res, PaySystemsIncomeQuery, low.String(), high.String())
	if err != nil {
		return nil, classify(fmt.Errorf("select pay systems income: %w", err))
	}
	return res, nil
}

func (s *Storage) CompanyOrders(ctx context.Context, from, to time.Time) ([]domain.CompanyOrders, error) {
	res := make([]domain.CompanyOrders, 0)
	err := s.db.SelectContext(ctx, &res, CompanyOrdersQuery, from, to)
	if err != nil {
		return nil, classify(fmt.Errorf("select company orders: %w", err))
	}
	return res, nil
}

func (s *Storage) TopOrders(ctx context.Context, company string, limit int) ([]domain.TopOrder, error) {
	res := make([]domain.TopOrder, 0)
	err := s.db.SelectContext(ctx, &res, TopOrdersQuery, company, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("select top orders: %w", err))
	}
	return res, nil
}

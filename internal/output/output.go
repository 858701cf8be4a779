package output

import (
	"shopdb/internal/domain"
)

// IOutput shows operation results to the operator.
type IOutput interface {
	ShowMessage(msg string)
	ShowError(err error)
	ShowRows(headers []string, rows []domain.Row)
}

func PaySystemsIncomeRows(res []domain.PaySystemIncome) ([]string, []domain.Row) {
	rows := make([]domain.Row, 0, len(res))
	for _, r := range res {
		rows = append(rows, domain.Row{r.ID, r.Name, r.OrderCount, r.TotalSum})
	}
	return []string{"id", "pay system", "orders", "income"}, rows
}

func CompanyOrdersRows(res []domain.CompanyOrders) ([]string, []domain.Row) {
	rows := make([]domain.Row, 0, len(res))
	for _, r := range res {
		rows = append(rows, domain.Row{r.ID, r.Name, r.OrderCount})
	}
	return []string{"id", "company", "orders"}, rows
}

func TopOrdersRows(res []domain.TopOrder) ([]string, []domain.Row) {
	rows := make([]domain.Row, 0, len(res))
	for _, r := range res {
		rows = append(rows, domain.Row{r.OrderID, r.Sum})
	}
	return []string{"order id", "sum"}, rows
}

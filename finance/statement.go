package finance

import (
	"fmt"
	"sort"
	"time"

	"oficina-backend/models"
)

// Transaction is one row of the statement ledger, either a revenue order or a
// paid expense.
type Transaction struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"` // income | expense
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount"`
	Category    string    `json:"category"`
}

type StatementSummary struct {
	TotalRevenueCents       int64 `json:"totalRevenue"`
	TotalVariableCostsCents int64 `json:"totalVariableCosts"`
	TotalFixedExpensesCents int64 `json:"totalFixedExpenses"`
	NetProfitCents          int64 `json:"netProfit"`
}

type Statement struct {
	Summary      StatementSummary `json:"summary"`
	Transactions []Transaction    `json:"transactions"`
}

// BuildStatement computes the month's profit-and-loss view from rows the
// caller already scoped to the month:
//
//   - orders: finished/paid orders created in the month (revenue, gross)
//   - items: the service items belonging to those orders (variable costs:
//     material + snapshotted commission)
//   - expenses: expenses paid in the month, cash basis (fixed costs)
//
// Net profit is revenue minus variable minus fixed and may be negative. The
// ledger merges one income row per order and one outflow row per expense,
// sorted by date descending; the sort is stable so ties keep each source
// list's original order.
func BuildStatement(orders []models.ServiceOrder, items []models.ServiceItem, expenses []models.Expense) Statement {
	transactions := make([]Transaction, 0, len(orders)+len(expenses))

	var totalRevenue int64
	for _, order := range orders {
		totalRevenue += order.TotalAmountCents
		transactions = append(transactions, Transaction{
			Id:          order.Id,
			Type:        "income",
			Date:        order.CreatedAt,
			Description: fmt.Sprintf("Serviço #%s", shortId(order.Id)),
			AmountCents: order.TotalAmountCents,
			Category:    "Serviços",
		})
	}

	var totalVariable int64
	for _, item := range items {
		totalVariable += item.MaterialCostCents + item.CommissionAmountCents
	}

	var totalFixed int64
	for _, expense := range expenses {
		totalFixed += expense.AmountCents
		date := expense.DueDate
		if expense.PaymentDate != nil {
			date = *expense.PaymentDate
		}
		category := expense.Category
		if category == "" {
			category = "Fixa"
		}
		transactions = append(transactions, Transaction{
			Id:          expense.Id,
			Type:        "expense",
			Date:        date,
			Description: expense.Description,
			AmountCents: expense.AmountCents,
			Category:    category,
		})
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	return Statement{
		Summary: StatementSummary{
			TotalRevenueCents:       totalRevenue,
			TotalVariableCostsCents: totalVariable,
			TotalFixedExpensesCents: totalFixed,
			NetProfitCents:          totalRevenue - totalVariable - totalFixed,
		},
		Transactions: transactions,
	}
}

// shortId is the human-facing order reference (first 8 chars of the UUID).
func shortId(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package finance_test

import (
	"testing"
	"time"

	"oficina-backend/finance"
	"oficina-backend/models"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestBuildStatement_WorkedScenario(t *testing.T) {
	// One finished order: item A qty=1 price=200.00 material=70.00 rate=30%
	// (commission 39.00), item B qty=2 price=50.00 no mechanic. Total 300.00.
	created := time.Date(2024, 12, 10, 14, 0, 0, 0, time.Local)
	orders := []models.ServiceOrder{
		{Id: "6f9619ff-8b86-d011-b42d-00c04fc964ff", Status: models.OrderStatusFinished, TotalAmountCents: 30000, CreatedAt: created},
	}
	items := []models.ServiceItem{
		{ServiceOrderId: orders[0].Id, Quantity: 1, UnitPriceCents: 20000, MaterialCostCents: 7000, CommissionRate: 30, CommissionAmountCents: 3900},
		{ServiceOrderId: orders[0].Id, Quantity: 2, UnitPriceCents: 5000},
	}

	st := finance.BuildStatement(orders, items, nil)

	if st.Summary.TotalRevenueCents != 30000 {
		t.Errorf("totalRevenue = %d, want 30000", st.Summary.TotalRevenueCents)
	}
	if st.Summary.TotalVariableCostsCents != 10900 {
		t.Errorf("totalVariableCosts = %d, want 10900", st.Summary.TotalVariableCostsCents)
	}
	if st.Summary.TotalFixedExpensesCents != 0 {
		t.Errorf("totalFixedExpenses = %d, want 0", st.Summary.TotalFixedExpensesCents)
	}
	if st.Summary.NetProfitCents != 19100 {
		t.Errorf("netProfit = %d, want 19100", st.Summary.NetProfitCents)
	}
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(st.Transactions))
	}
	tx := st.Transactions[0]
	if tx.Type != "income" || tx.Category != "Serviços" {
		t.Errorf("transaction = %+v, want income/Serviços", tx)
	}
	if tx.Description != "Serviço #6f9619ff" {
		t.Errorf("description = %q, want short order reference", tx.Description)
	}
}

func TestBuildStatement_NetProfitIdentity(t *testing.T) {
	paid := time.Date(2024, 12, 5, 9, 0, 0, 0, time.Local)
	orders := []models.ServiceOrder{
		{Id: "a", TotalAmountCents: 5000, CreatedAt: paid},
	}
	items := []models.ServiceItem{
		{ServiceOrderId: "a", MaterialCostCents: 2000, CommissionAmountCents: 1000},
	}
	expenses := []models.Expense{
		{Id: "e1", Description: "Aluguel", AmountCents: 15000, Status: models.ExpenseStatusPaid, PaymentDate: datePtr(paid)},
	}

	st := finance.BuildStatement(orders, items, expenses)

	want := st.Summary.TotalRevenueCents - st.Summary.TotalVariableCostsCents - st.Summary.TotalFixedExpensesCents
	if st.Summary.NetProfitCents != want {
		t.Errorf("netProfit = %d, want %d", st.Summary.NetProfitCents, want)
	}
	// 5000 - 3000 - 15000: losses are allowed
	if st.Summary.NetProfitCents != -13000 {
		t.Errorf("netProfit = %d, want -13000", st.Summary.NetProfitCents)
	}
}

func TestBuildStatement_LedgerMergeAndOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 12, d, 12, 0, 0, 0, time.Local) }

	orders := []models.ServiceOrder{
		{Id: "order-1", TotalAmountCents: 1000, CreatedAt: day(3)},
		{Id: "order-2", TotalAmountCents: 2000, CreatedAt: day(10)},
	}
	expenses := []models.Expense{
		{Id: "exp-1", Description: "Energia", AmountCents: 500, Category: models.ExpenseCategoryFixed, PaymentDate: datePtr(day(7))},
		{Id: "exp-2", Description: "Peças avulsas", AmountCents: 300, PaymentDate: datePtr(day(3))},
	}

	st := finance.BuildStatement(orders, nil, expenses)

	if len(st.Transactions) != len(orders)+len(expenses) {
		t.Fatalf("transactions = %d, want %d", len(st.Transactions), len(orders)+len(expenses))
	}
	for i := 1; i < len(st.Transactions); i++ {
		if st.Transactions[i].Date.After(st.Transactions[i-1].Date) {
			t.Fatalf("ledger not sorted descending at index %d", i)
		}
	}
	// Ties (order-1 and exp-2 on day 3) keep source order: incomes were
	// appended before outflows, stable sort preserves that.
	if st.Transactions[2].Id != "order-1" || st.Transactions[3].Id != "exp-2" {
		t.Errorf("tie order = %s,%s, want order-1,exp-2", st.Transactions[2].Id, st.Transactions[3].Id)
	}
	// Empty category renders as the default fixed label.
	for _, tx := range st.Transactions {
		if tx.Id == "exp-2" && tx.Category != "Fixa" {
			t.Errorf("default category = %q, want Fixa", tx.Category)
		}
	}
}

func TestBuildStatement_Empty(t *testing.T) {
	st := finance.BuildStatement(nil, nil, nil)
	if st.Summary.NetProfitCents != 0 || len(st.Transactions) != 0 {
		t.Errorf("empty statement = %+v, want all zero", st)
	}
}

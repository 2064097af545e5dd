package finance_test

import (
	"testing"

	"oficina-backend/finance"
	"oficina-backend/models"
)

func strPtr(s string) *string { return &s }

func TestCommissionReport_Grouping(t *testing.T) {
	mechanics := []models.Mechanic{
		{Id: "m1", Name: "Carlos", CommissionRate: 30},
		{Id: "m2", Name: "Ana", CommissionRate: 25},
		{Id: "m3", Name: "Bruno", CommissionRate: 10}, // no items this month
	}
	items := []models.ServiceItem{
		{MechanicId: strPtr("m1"), Quantity: 1, UnitPriceCents: 20000, MaterialCostCents: 7000, CommissionAmountCents: 3900},
		{MechanicId: strPtr("m1"), Quantity: 2, UnitPriceCents: 5000, CommissionAmountCents: 3000},
		{MechanicId: strPtr("m2"), Quantity: 1, UnitPriceCents: 8000, MaterialCostCents: 1000, CommissionAmountCents: 1750},
		{Quantity: 4, UnitPriceCents: 2500}, // unassigned, ignored
	}

	rows := finance.CommissionReport(items, mechanics)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (zero-activity mechanics omitted)", len(rows))
	}
	// Sorted by name: Ana, Carlos.
	if rows[0].MechanicId != "m2" || rows[1].MechanicId != "m1" {
		t.Fatalf("row order = %s,%s, want m2,m1", rows[0].MechanicId, rows[1].MechanicId)
	}

	carlos := rows[1]
	if carlos.TotalServicesCents != 30000 {
		t.Errorf("totalServices = %d, want 30000", carlos.TotalServicesCents)
	}
	if carlos.CommissionValueCents != 6900 {
		t.Errorf("commissionValue = %d, want 6900", carlos.CommissionValueCents)
	}
	if carlos.OrdersCount != 2 {
		t.Errorf("ordersCount = %d, want 2", carlos.OrdersCount)
	}
	if carlos.TotalMaterialCostCents != 7000 {
		t.Errorf("totalMaterialCost = %d, want 7000", carlos.TotalMaterialCostCents)
	}
}

func TestCommissionReport_CurrentRateIsDisplayOnly(t *testing.T) {
	// Item snapshotted at 30%, mechanic since moved to 50%: the value stays
	// the snapshot sum, the rate column shows the live rate.
	mechanics := []models.Mechanic{{Id: "m1", Name: "Carlos", CommissionRate: 50}}
	items := []models.ServiceItem{
		{MechanicId: strPtr("m1"), Quantity: 1, UnitPriceCents: 20000, CommissionRate: 30, CommissionAmountCents: 3900},
	}

	rows := finance.CommissionReport(items, mechanics)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].CommissionRate != 50 {
		t.Errorf("commissionRate = %v, want current rate 50", rows[0].CommissionRate)
	}
	if rows[0].CommissionValueCents != 3900 {
		t.Errorf("commissionValue = %d, want snapshot 3900", rows[0].CommissionValueCents)
	}
}

func TestCommissionReport_SkipsUnknownMechanic(t *testing.T) {
	items := []models.ServiceItem{
		{MechanicId: strPtr("ghost"), Quantity: 1, UnitPriceCents: 1000, CommissionAmountCents: 100},
	}
	rows := finance.CommissionReport(items, nil)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0 for items pointing at a missing mechanic", len(rows))
	}
}

func TestCommissionReport_NeverEmitsZeroRows(t *testing.T) {
	mechanics := []models.Mechanic{
		{Id: "m1", Name: "Carlos", CommissionRate: 30},
	}
	rows := finance.CommissionReport(nil, mechanics)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0 when no items qualify", len(rows))
	}
}

func TestCommissionReport_FractionalQuantityGross(t *testing.T) {
	mechanics := []models.Mechanic{{Id: "m1", Name: "Carlos", CommissionRate: 30}}
	items := []models.ServiceItem{
		{MechanicId: strPtr("m1"), Quantity: 1.5, UnitPriceCents: 333},
		{MechanicId: strPtr("m1"), Quantity: 1.5, UnitPriceCents: 333},
	}
	rows := finance.CommissionReport(items, mechanics)
	// 4.995 + 4.995 sums at full precision, rounded once.
	if rows[0].TotalServicesCents != 999 {
		t.Errorf("totalServices = %d, want 999", rows[0].TotalServicesCents)
	}
}

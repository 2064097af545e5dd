package finance_test

import (
	"testing"

	"oficina-backend/finance"
	"oficina-backend/models"
)

func TestCommissionFor(t *testing.T) {
	tests := []struct {
		name              string
		quantity          float64
		unitPriceCents    int64
		materialCostCents int64
		ratePercent       float64
		want              int64
	}{
		{
			// Service 200.00, material 70.00, rate 30% -> base 130.00, commission 39.00
			name:              "base is gross minus material",
			quantity:          1,
			unitPriceCents:    20000,
			materialCostCents: 7000,
			ratePercent:       30,
			want:              3900,
		},
		{
			name:           "zero rate means zero commission",
			quantity:       2,
			unitPriceCents: 5000,
			ratePercent:    0,
			want:           0,
		},
		{
			name:              "material above gross floors the base at zero",
			quantity:          1,
			unitPriceCents:    5000,
			materialCostCents: 9000,
			ratePercent:       50,
			want:              0,
		},
		{
			name:           "rounds to nearest cent",
			quantity:       1,
			unitPriceCents: 1001, // 10.01 at 15% = 150.15 -> 150
			ratePercent:    15,
			want:           150,
		},
		{
			name:           "half cent rounds up",
			quantity:       1,
			unitPriceCents: 1050, // 10.50 at 15% = 157.5 -> 158
			ratePercent:    15,
			want:           158,
		},
		{
			name:              "fractional quantity",
			quantity:          1.5,
			unitPriceCents:    10000, // gross 150.00, material 50.00, base 100.00 at 10% = 10.00
			materialCostCents: 5000,
			ratePercent:       10,
			want:              1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.CommissionFor(tt.quantity, tt.unitPriceCents, tt.materialCostCents, tt.ratePercent)
			if got != tt.want {
				t.Errorf("CommissionFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommissionFor_SnapshotInvariance(t *testing.T) {
	// The amount stored on an item is computed once from the rate in force at
	// creation time. Recomputing with a changed rate gives a different number,
	// which is exactly why the stored snapshot must not be recomputed.
	atCreation := finance.CommissionFor(1, 20000, 7000, 30)
	afterRateChange := finance.CommissionFor(1, 20000, 7000, 50)
	if atCreation != 3900 {
		t.Fatalf("snapshot = %d, want 3900", atCreation)
	}
	if afterRateChange == atCreation {
		t.Fatalf("expected a different amount under the new rate, got %d twice", atCreation)
	}
}

func TestOrderTotal(t *testing.T) {
	items := []models.ServiceItem{
		{Quantity: 1, UnitPriceCents: 20000},
		{Quantity: 2, UnitPriceCents: 5000},
	}
	if got := finance.OrderTotal(items); got != 30000 {
		t.Errorf("OrderTotal() = %d, want 30000", got)
	}
}

func TestOrderTotal_Idempotent(t *testing.T) {
	items := []models.ServiceItem{
		{Quantity: 1.5, UnitPriceCents: 333},
		{Quantity: 3, UnitPriceCents: 1299},
	}
	first := finance.OrderTotal(items)
	second := finance.OrderTotal(items)
	if first != second {
		t.Errorf("OrderTotal not idempotent: %d then %d", first, second)
	}
}

func TestOrderTotal_RoundsOnceAtTheEnd(t *testing.T) {
	// Two lines of 1.5 x 3.33 are 4.995 + 4.995 = 9.99 exactly; per-line
	// rounding would give 5.00 + 5.00 = 10.00 instead.
	items := []models.ServiceItem{
		{Quantity: 1.5, UnitPriceCents: 333},
		{Quantity: 1.5, UnitPriceCents: 333},
	}
	if got := finance.OrderTotal(items); got != 999 {
		t.Errorf("OrderTotal() = %d, want 999 (full-precision sum, single terminal round)", got)
	}
}

func TestOrderTotal_Empty(t *testing.T) {
	if got := finance.OrderTotal(nil); got != 0 {
		t.Errorf("OrderTotal(nil) = %d, want 0", got)
	}
}

package finance

import (
	"math"
	"sort"

	"oficina-backend/models"
)

// CommissionRow is one mechanic's monthly rollup. CommissionValueCents sums
// the snapshots stored on the items; CommissionRate is the mechanic's current
// rate and is display-only, so the two need not agree after a rate change.
type CommissionRow struct {
	MechanicId             string  `json:"mechanicId"`
	MechanicName           string  `json:"mechanicName"`
	TotalServicesCents     int64   `json:"totalServices"`
	CommissionRate         float64 `json:"commissionRate"`
	CommissionValueCents   int64   `json:"commissionValue"`
	OrdersCount            int     `json:"ordersCount"`
	TotalMaterialCostCents int64   `json:"totalMaterialCost"`
}

type commissionAcc struct {
	total        float64
	commission   int64
	count        int
	materialCost int64
}

// CommissionReport groups the month's qualifying items (finished/paid orders,
// mechanic assigned) by mechanic. Mechanics with no qualifying item are
// omitted entirely rather than emitted as zero rows. Items referencing a
// mechanic missing from mechanics are skipped. Rows come back sorted by
// mechanic name so output is deterministic.
func CommissionReport(items []models.ServiceItem, mechanics []models.Mechanic) []CommissionRow {
	byId := make(map[string]models.Mechanic, len(mechanics))
	for _, m := range mechanics {
		byId[m.Id] = m
	}

	groups := make(map[string]*commissionAcc)
	for _, item := range items {
		if item.MechanicId == nil {
			continue
		}
		key := *item.MechanicId
		if _, ok := byId[key]; !ok {
			continue
		}
		acc, ok := groups[key]
		if !ok {
			acc = &commissionAcc{}
			groups[key] = acc
		}
		acc.total += LineGross(item.Quantity, item.UnitPriceCents)
		acc.commission += item.CommissionAmountCents
		acc.count++
		acc.materialCost += item.MaterialCostCents
	}

	rows := make([]CommissionRow, 0, len(groups))
	for id, acc := range groups {
		mechanic := byId[id]
		rows = append(rows, CommissionRow{
			MechanicId:             id,
			MechanicName:           mechanic.Name,
			TotalServicesCents:     int64(math.Round(acc.total)),
			CommissionRate:         mechanic.CommissionRate,
			CommissionValueCents:   acc.commission,
			OrdersCount:            acc.count,
			TotalMaterialCostCents: acc.materialCost,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MechanicName != rows[j].MechanicName {
			return rows[i].MechanicName < rows[j].MechanicName
		}
		return rows[i].MechanicId < rows[j].MechanicId
	})
	return rows
}

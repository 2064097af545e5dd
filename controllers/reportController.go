package controllers

import (
	"fmt"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/finance"
	"oficina-backend/models"
	"oficina-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// commissionRows fetches the window's qualifying items (finished/paid orders,
// mechanic assigned) plus the mechanic roster and rolls them up.
func commissionRows(db *gorm.DB, start, end time.Time) ([]finance.CommissionRow, error) {
	var items []models.ServiceItem
	if err := db.
		Joins("JOIN service_orders ON service_orders.id = service_items.service_order_id").
		Where("service_orders.created_at >= ? AND service_orders.created_at < ?", start, end).
		Where("service_orders.status IN ?", models.RevenueStatuses).
		Where("service_items.mechanic_id IS NOT NULL").
		Find(&items).Error; err != nil {
		return nil, err
	}

	var mechanics []models.Mechanic
	if err := db.Order("name ASC").Find(&mechanics).Error; err != nil {
		return nil, err
	}

	return finance.CommissionReport(items, mechanics), nil
}

// GET /api/reports/commissions?month=YYYY-MM
// Defaults to the current month. Mechanics without qualifying items are
// absent from the rows; the client treats "selected mechanic, no row" as an
// empty state.
func GetCommissionReport(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = finance.CurrentMonth()
	}
	start, end, err := finance.MonthRange(month)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	rows, err := commissionRows(db, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build commission report")
	}

	return c.JSON(fiber.Map{
		"month":   month,
		"rows":    rows,
		"message": "success",
	})
}

// GET /api/reports/commissions/export?month=YYYY-MM
// Same rollup as an XLSX download for payroll handoff.
func ExportCommissionReport(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = finance.CurrentMonth()
	}
	start, end, err := finance.MonthRange(month)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	rows, err := commissionRows(db, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build commission report")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comissões"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Mecânico", "Taxa atual (%)", "Serviços (bruto)", "Custo de material", "Comissão", "Itens"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.MechanicName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.CommissionRate)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), utils.FormatBRL(row.TotalServicesCents))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), utils.FormatBRL(row.TotalMaterialCostCents))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), utils.FormatBRL(row.CommissionValueCents))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.OrdersCount)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not write spreadsheet")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="comissoes-%s.xlsx"`, month))
	return c.Send(buf.Bytes())
}

// GET /api/dashboard
// Current-month headline numbers: gross revenue, variable costs, paid fixed
// expenses, net profit and open orders.
func GetDashboard(c *fiber.Ctx) error {
	start, end, err := finance.MonthRange(finance.CurrentMonth())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve current month")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var orders []models.ServiceOrder
	if err := db.Where("created_at >= ? AND created_at < ?", start, end).
		Where("status IN ?", models.RevenueStatuses).
		Find(&orders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load revenue")
	}
	var revenue int64
	for _, o := range orders {
		revenue += o.TotalAmountCents
	}

	var variableCosts int64
	if len(orders) > 0 {
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.Id)
		}
		var items []models.ServiceItem
		if err := db.Where("service_order_id IN ?", ids).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load item costs")
		}
		for _, item := range items {
			variableCosts += item.MaterialCostCents + item.CommissionAmountCents
		}
	}

	var expenses []models.Expense
	if err := db.Where("status = ?", models.ExpenseStatusPaid).
		Where("payment_date >= ? AND payment_date < ?", start, end).
		Find(&expenses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load expenses")
	}
	var fixedExpenses int64
	for _, e := range expenses {
		fixedExpenses += e.AmountCents
	}

	var openOrders int64
	if err := db.Model(&models.ServiceOrder{}).
		Where("status IN ?", models.OpenStatuses).
		Count(&openOrders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not count open orders")
	}

	return c.JSON(fiber.Map{
		"monthly_revenue_cents": revenue,
		"variable_costs_cents":  variableCosts,
		"fixed_expenses_cents":  fixedExpenses,
		"net_profit_cents":      revenue - variableCosts - fixedExpenses,
		"open_orders":           openOrders,
	})
}

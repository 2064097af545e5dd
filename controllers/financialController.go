package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/finance"
	"oficina-backend/middlewares"
	"oficina-backend/models"
	"oficina-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ExpenseCreateDTO struct {
	Description string `json:"description" validate:"required,min=1"`
	Amount      string `json:"amount" validate:"required"` // money input, "R$ 1.234,56" or "1234.56"
	DueDate     string `json:"due_date" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=fixed variable"`
}

type ExpenseUpdateDTO struct {
	Description *string `json:"description" validate:"omitempty,min=1"`
	Amount      *string `json:"amount" validate:"omitempty"`
	DueDate     *string `json:"due_date" validate:"omitempty"`
	Category    *string `json:"category" validate:"omitempty,oneof=fixed variable"`
}

// POST /api/expense
func CreateExpense(c *fiber.Ctx) error {
	var in ExpenseCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	amountCents, err := utils.ParseMoneyBRL(in.Amount)
	if err != nil || amountCents <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid amount")
	}
	dueDate, err := time.ParseInLocation("2006-01-02", in.DueDate, time.Local)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid due date, want YYYY-MM-DD")
	}
	category := in.Category
	if category == "" {
		category = models.ExpenseCategoryFixed
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	expense := models.Expense{
		Description: strings.TrimSpace(in.Description),
		AmountCents: amountCents,
		DueDate:     dueDate,
		Category:    category,
		Status:      models.ExpenseStatusPending,
	}
	if err := db.Create(&expense).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create expense")
	}
	return c.JSON(expense)
}

// GET /api/expenses?month=YYYY-MM&status=
// Month filters by due_date (what is owed in the month), status is optional.
func GetExpenses(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Order("due_date ASC")
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		start, end, err := finance.MonthRange(month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q = q.Where("due_date >= ? AND due_date < ?", start, end)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list expenses")
	}
	return c.JSON(fiber.Map{
		"expenses": expenses,
		"message":  "success",
	})
}

// PUT /api/expense/:id
func UpdateExpense(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var in ExpenseUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Expense
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		amountCents, err := utils.ParseMoneyBRL(*in.Amount)
		if err != nil || amountCents <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid amount")
		}
		updates["amount_cents"] = amountCents
	}
	if in.DueDate != nil {
		dueDate, err := time.ParseInLocation("2006-01-02", *in.DueDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid due date, want YYYY-MM-DD")
		}
		updates["due_date"] = dueDate
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&models.Expense{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update expense")
	}

	var out models.Expense
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload expense")
	}
	return c.JSON(out)
}

// PUT /api/expense/:id/toggle
// pending -> paid stamps payment_date with now; paid -> pending clears it, so
// the expense drops back out of every cash-basis statement.
func ToggleExpenseStatus(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var expense models.Expense
	if err := db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if expense.Status == models.ExpenseStatusPending {
		now := time.Now()
		updates["status"] = models.ExpenseStatusPaid
		updates["payment_date"] = &now
	} else {
		updates["status"] = models.ExpenseStatusPending
		updates["payment_date"] = nil
	}

	if err := db.Model(&expense).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not toggle expense status")
	}

	var out models.Expense
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload expense")
	}
	return c.JSON(out)
}

// DELETE /api/expense/:id
func DeleteExpense(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete expense")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GET /api/financial/statement?month=YYYY-MM
// Month defaults to the current one. A failing revenue query degrades to an
// empty order set instead of aborting the whole statement; with no orders the
// dependent item query is skipped entirely (an IN () filter would be invalid).
func GetFinancialStatement(c *fiber.Ctx) error {
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

	var orders []models.ServiceOrder
	if err := db.Where("created_at >= ? AND created_at < ?", start, end).
		Where("status IN ?", models.RevenueStatuses).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("statement revenue query failed, degrading to empty set: %v", err)
		orders = nil
	}

	var items []models.ServiceItem
	if len(orders) > 0 {
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.Id)
		}
		if err := db.Where("service_order_id IN ?", ids).Find(&items).Error; err != nil {
			log.Printf("statement item query failed, degrading to empty set: %v", err)
			items = nil
		}
	}

	var expenses []models.Expense
	if err := db.Where("status = ?", models.ExpenseStatusPaid).
		Where("payment_date >= ? AND payment_date < ?", start, end).
		Order("payment_date DESC").
		Find(&expenses).Error; err != nil {
		log.Printf("statement expense query failed, degrading to empty set: %v", err)
		expenses = nil
	}

	return c.JSON(finance.BuildStatement(orders, items, expenses))
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ExpenseStatusPending = "pending"
	ExpenseStatusPaid    = "paid"

	ExpenseCategoryFixed    = "fixed"
	ExpenseCategoryVariable = "variable"
)

// Expense is recognized on a cash basis: the statement looks at PaymentDate,
// not DueDate. PaymentDate is nil while the expense is pending.
type Expense struct {
	Id          string     `json:"id" gorm:"primaryKey"`
	Description string     `json:"description" gorm:"not null"`
	AmountCents int64      `json:"amount_cents"`
	DueDate     time.Time  `json:"due_date" gorm:"index"`
	PaymentDate *time.Time `json:"payment_date" gorm:"index:idx_expenses_status_payment,priority:2"`
	Category    string     `json:"category" gorm:"type:VARCHAR(10);default:fixed"`
	Status      string     `json:"status" gorm:"type:VARCHAR(10);default:pending;index:idx_expenses_status_payment,priority:1"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (expense *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	expense.Id = uuid.NewString()
	return
}

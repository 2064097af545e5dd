package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service order lifecycle.
const (
	OrderStatusDraft           = "draft"
	OrderStatusPendingApproval = "pending_approval"
	OrderStatusApproved        = "approved"
	OrderStatusFinished        = "finished"
	OrderStatusPaid            = "paid"
	OrderStatusCanceled        = "canceled"
)

// Item kinds.
const (
	ItemTypeService = "service"
	ItemTypePart    = "part"
)

// RevenueStatuses are the order states counted as realized revenue by the
// financial statement and the commission report.
var RevenueStatuses = []string{OrderStatusFinished, OrderStatusPaid}

// OpenStatuses are the states shown as work in progress on the dashboard.
var OpenStatuses = []string{OrderStatusDraft, OrderStatusPendingApproval, OrderStatusApproved}

// ServiceOrder is the current/live state of a repair job. TotalAmountCents is
// gross revenue (sum of item quantity x unit price); material cost and
// commission are tracked per item and never subtracted here.
type ServiceOrder struct {
	Id        string  `json:"id" gorm:"primaryKey"`
	VehicleId string  `json:"-" gorm:"not null;index"`
	Vehicle   Vehicle `json:"vehicle" gorm:"foreignKey:VehicleId;references:Id"`

	Status string `json:"status" gorm:"type:VARCHAR(20);default:draft;index:idx_service_orders_status_created,priority:1"`

	Items            []ServiceItem `json:"items" gorm:"foreignKey:ServiceOrderId;constraint:OnDelete:CASCADE"`
	TotalAmountCents int64         `json:"total_amount_cents"`

	// CRM recall date, nil means no return scheduled.
	NextServiceDate *time.Time `json:"next_service_date"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_service_orders_status_created,priority:2"`
}

func (order *ServiceOrder) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	order.Id = uuid.NewString()
	return
}

// ServiceItem is one line of an order. CommissionRate and CommissionAmountCents
// are immutable snapshots taken when the line is created.
type ServiceItem struct {
	Id             string  `json:"id" gorm:"primaryKey"`
	ServiceOrderId string  `json:"-" gorm:"not null;index"`
	MechanicId     *string `json:"mechanic_id" gorm:"index"`

	Type        string  `json:"type" gorm:"type:VARCHAR(10);default:service"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    float64 `json:"quantity" gorm:"type:numeric(10,3)"` // fractional allowed (e.g. hours)

	UnitPriceCents    int64 `json:"unit_price_cents"`
	MaterialCostCents int64 `json:"material_cost_cents"`

	CommissionRate        float64 `json:"commission_rate"`
	CommissionAmountCents int64   `json:"commission_amount_cents"`

	CreatedAt time.Time `json:"created_at"`
}

func (item *ServiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	item.Id = uuid.NewString()
	return
}

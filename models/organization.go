package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription states for an organization. "trialing" and "active" unlock the
// business routes; everything else is gated by middlewares.RequireActiveSubscription.
const (
	SubscriptionInactive = "inactive"
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// Organization is the tenant: one repair shop, one Postgres schema.
// Lives in the public schema.
type Organization struct {
	Id                 string     `json:"id" gorm:"primaryKey"`
	Name               string     `json:"name" gorm:"not null"`
	OwnerId            string     `json:"-"`
	Owner              User       `json:"owner" gorm:"foreignKey:OwnerId;references:Id"`
	SchemaName         string     `json:"-" gorm:"unique;not null"`
	SubscriptionStatus string     `json:"subscription_status" gorm:"type:VARCHAR(20);default:inactive"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

func (org *Organization) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	org.Id = uuid.NewString()
	return
}

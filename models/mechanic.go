package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mechanic is a commissioned service provider. CommissionRate is the CURRENT
// rate; items snapshot it at creation time, so editing it never rewrites
// historical commission amounts.
type Mechanic struct {
	Id             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	CommissionRate float64   `json:"commission_rate"` // percent, 0-100
	Active         bool      `json:"active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
}

func (mechanic *Mechanic) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	mechanic.Id = uuid.NewString()
	return
}

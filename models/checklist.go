package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReceptionChecklist records the state of the vehicle on arrival (spare tire,
// jack, fuel level...). Items is a free-form name -> checked map; one
// checklist per order, upserted on save.
type ReceptionChecklist struct {
	Id             string         `json:"id" gorm:"primaryKey"`
	ServiceOrderId string         `json:"service_order_id" gorm:"uniqueIndex;not null"`
	FuelLevel      string         `json:"fuel_level"`
	Notes          string         `json:"notes"`
	Items          datatypes.JSON `json:"items" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (checklist *ReceptionChecklist) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	checklist.Id = uuid.NewString()
	return
}

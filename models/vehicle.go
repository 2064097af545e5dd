package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	Id         string   `json:"id" gorm:"primaryKey"`
	CustomerId string   `json:"-" gorm:"not null;index"`
	Customer   Customer `json:"customer" gorm:"foreignKey:CustomerId;references:Id"`
	Plate      string   `json:"plate" gorm:"index"`
	Brand      string   `json:"brand"`
	Model      string   `json:"model"`
	Year       int      `json:"year"`
	Color      string   `json:"color"`

	// Opaque catalog ids from the external vehicle-lookup integration.
	BrandId string `json:"brand_id"`
	ModelId string `json:"model_id"`
	YearId  string `json:"year_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (vehicle *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	vehicle.Id = uuid.NewString()
	return
}

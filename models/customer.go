package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"index"`
	Email     string    `json:"email"`
	DocType   string    `json:"doc_type" gorm:"type:VARCHAR(4)"` // CPF | CNPJ
	CpfCnpj   string    `json:"cpf_cnpj" gorm:"index"`           // digits only
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}

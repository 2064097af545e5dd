package controllers

import (
	"errors"
	"strings"

	"oficina-backend/database"
	"oficina-backend/middlewares"
	"oficina-backend/models"
	"oficina-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerCreateDTO struct {
	Name    string `json:"name" validate:"required,min=1"`
	Phone   string `json:"phone" validate:"omitempty"`
	Email   string `json:"email" validate:"omitempty,email"`
	CpfCnpj string `json:"cpf_cnpj" validate:"omitempty"`
	Address string `json:"address" validate:"omitempty"`
}

type CustomerUpdateDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Phone   *string `json:"phone" validate:"omitempty"`
	Email   *string `json:"email" validate:"omitempty,email"`
	CpfCnpj *string `json:"cpf_cnpj" validate:"omitempty"`
	Address *string `json:"address" validate:"omitempty"`
}

// POST /api/customer
func CreateCustomer(c *fiber.Ctx) error {
	var in CustomerCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	doc := utils.Digits(in.CpfCnpj)
	customer := models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		DocType: docTypeFor(doc),
		CpfCnpj: doc,
		Address: strings.TrimSpace(in.Address),
	}
	if err := db.Create(&customer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create customer")
	}
	return c.JSON(customer)
}

// GET /api/customers
func GetCustomers(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var customers []models.Customer
	if err := db.Order("name ASC").Find(&customers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list customers")
	}
	return c.JSON(fiber.Map{
		"customers": customers,
		"message":   "success",
	})
}

// GET /api/customer/:id
func GetCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var customer models.Customer
	if err := db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var vehicles []models.Vehicle
	db.Where("customer_id = ?", id).Order("created_at DESC").Find(&vehicles)

	return c.JSON(fiber.Map{
		"customer": customer,
		"vehicles": vehicles,
	})
}

// PUT /api/customer/:id
func UpdateCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var in CustomerUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Customer
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if in.CpfCnpj != nil {
		doc := utils.Digits(*in.CpfCnpj)
		updates["cpf_cnpj"] = doc
		updates["doc_type"] = docTypeFor(doc)
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&models.Customer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update customer")
	}

	var out models.Customer
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload customer")
	}
	return c.JSON(out)
}

// DELETE /api/customer/:id
func DeleteCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		// FK restriction: vehicles still reference this customer.
		return fiber.NewError(fiber.StatusConflict, "could not delete customer, check linked vehicles")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "customer not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// docTypeFor follows the Brazilian document length rule: 11 digits is a CPF,
// anything longer a CNPJ.
func docTypeFor(digits string) string {
	if digits == "" {
		return ""
	}
	if len(digits) > 11 {
		return "CNPJ"
	}
	return "CPF"
}

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

type VehicleCreateDTO struct {
	CustomerName  string `json:"customer_name" validate:"required,min=1"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty"`
	DocNumber     string `json:"doc_number" validate:"omitempty"`

	Plate string `json:"plate" validate:"required,min=1"`
	Brand string `json:"brand" validate:"omitempty"`
	Model string `json:"model" validate:"omitempty"`
	Year  int    `json:"year" validate:"omitempty,gte=1900"`
	Color string `json:"color" validate:"omitempty"`

	// Catalog ids from the external vehicle lookup, stored verbatim.
	BrandId string `json:"brand_id" validate:"omitempty"`
	ModelId string `json:"model_id" validate:"omitempty"`
	YearId  string `json:"year_id" validate:"omitempty"`
}

// POST /api/vehicle
// Creates the vehicle and finds-or-creates its owner: document number is the
// strong identity, phone the weak fallback, otherwise a fresh customer.
func CreateVehicle(c *fiber.Ctx) error {
	var in VehicleCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	doc := utils.Digits(in.DocNumber)
	phone := strings.TrimSpace(in.CustomerPhone)

	customerId := ""
	if doc != "" {
		var byDoc models.Customer
		if err := db.Where("cpf_cnpj = ?", doc).First(&byDoc).Error; err == nil {
			customerId = byDoc.Id
		}
	}
	if customerId == "" && phone != "" {
		var byPhone models.Customer
		if err := db.Where("phone = ?", phone).First(&byPhone).Error; err == nil {
			customerId = byPhone.Id
		}
	}

	if customerId == "" {
		customer := models.Customer{
			Name:    strings.TrimSpace(in.CustomerName),
			Phone:   phone,
			DocType: docTypeFor(doc),
			CpfCnpj: doc,
		}
		if err := db.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create customer")
		}
		customerId = customer.Id
	} else if doc != "" {
		// Backfill the document on the matched customer.
		db.Model(&models.Customer{}).Where("id = ?", customerId).
			Updates(map[string]any{"cpf_cnpj": doc, "doc_type": docTypeFor(doc)})
	}

	vehicle := models.Vehicle{
		CustomerId: customerId,
		Plate:      strings.ToUpper(strings.TrimSpace(in.Plate)),
		Brand:      strings.TrimSpace(in.Brand),
		Model:      strings.TrimSpace(in.Model),
		Year:       in.Year,
		Color:      strings.TrimSpace(in.Color),
		BrandId:    in.BrandId,
		ModelId:    in.ModelId,
		YearId:     in.YearId,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create vehicle")
	}

	var out models.Vehicle
	if err := db.Preload("Customer").First(&out, "id = ?", vehicle.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload vehicle")
	}
	return c.JSON(out)
}

// GET /api/vehicles
func GetVehicles(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var vehicles []models.Vehicle
	if err := db.Preload("Customer").Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list vehicles")
	}
	return c.JSON(fiber.Map{
		"vehicles": vehicles,
		"message":  "success",
	})
}

// GET /api/vehicle/:id
func GetVehicle(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var vehicle models.Vehicle
	if err := db.Preload("Customer").First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var orders []models.ServiceOrder
	db.Where("vehicle_id = ?", id).Order("created_at DESC").Find(&orders)

	return c.JSON(fiber.Map{
		"vehicle": vehicle,
		"orders":  orders,
	})
}

// DELETE /api/vehicle/:id
func DeleteVehicle(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusConflict, "could not delete vehicle, check linked service orders")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

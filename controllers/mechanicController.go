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

type MechanicCreateDTO struct {
	Name           string  `json:"name" validate:"required,min=1"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

type MechanicUpdateDTO struct {
	Name           *string  `json:"name" validate:"omitempty,min=1"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	Active         *bool    `json:"active" validate:"omitempty"`
}

// POST /api/mechanic
func CreateMechanic(c *fiber.Ctx) error {
	var in MechanicCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	mechanic := models.Mechanic{
		Name:           strings.TrimSpace(in.Name),
		CommissionRate: in.CommissionRate,
		Active:         true,
	}
	if err := db.Create(&mechanic).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create mechanic")
	}
	return c.JSON(mechanic)
}

// GET /api/mechanics
func GetMechanics(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var mechanics []models.Mechanic
	if err := db.Order("name ASC").Find(&mechanics).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list mechanics")
	}
	return c.JSON(fiber.Map{
		"mechanics": mechanics,
		"message":   "success",
	})
}

// PUT /api/mechanic/:id
// Rate changes take effect for FUTURE items only; amounts already snapshotted
// on service items stay untouched.
func UpdateMechanic(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var in MechanicUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Mechanic
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "mechanic not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}
	if err := db.Model(&models.Mechanic{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update mechanic")
	}

	var out models.Mechanic
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload mechanic")
	}
	return c.JSON(out)
}

// DELETE /api/mechanic/:id
func DeleteMechanic(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Delete(&models.Mechanic{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusConflict, "could not delete mechanic")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "mechanic not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

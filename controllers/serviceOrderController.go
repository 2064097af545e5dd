package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/finance"
	"oficina-backend/middlewares"
	"oficina-backend/models"
	"oficina-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// "none" in a mechanic selector means "no mechanic", not a lookup failure.
const mechanicNone = "none"

type OrderCreateDTO struct {
	VehicleId string `json:"vehicle_id" validate:"required,min=1"`
}

type ItemCreateDTO struct {
	Description  string  `json:"description" validate:"required,min=1"`
	Type         string  `json:"type" validate:"omitempty,oneof=service part"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	MechanicId   string  `json:"mechanic_id" validate:"omitempty"`
	MaterialCost float64 `json:"material_cost" validate:"omitempty,gte=0"`
}

type OrderStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending_approval approved finished paid canceled"`
}

type NextServiceDTO struct {
	Date *time.Time `json:"date"` // nil clears the recall
}

type ChecklistDTO struct {
	FuelLevel string          `json:"fuel_level" validate:"omitempty"`
	Notes     string          `json:"notes" validate:"omitempty"`
	Items     map[string]bool `json:"items"`
}

// POST /api/service-order
func CreateServiceOrder(c *fiber.Ctx) error {
	var in OrderCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var vehicle models.Vehicle
	if err := db.First(&vehicle, "id = ?", in.VehicleId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	order := models.ServiceOrder{
		VehicleId:        vehicle.Id,
		Status:           models.OrderStatusDraft,
		TotalAmountCents: 0,
	}
	if err := db.Create(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create service order")
	}
	return c.JSON(order)
}

// GET /api/service-orders?status=
func GetServiceOrders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Preload("Vehicle").Preload("Vehicle.Customer").Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.ServiceOrder
	if err := q.Find(&orders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list service orders")
	}
	return c.JSON(fiber.Map{
		"orders":  orders,
		"message": "success",
	})
}

// GET /api/service-order/:id
func GetServiceOrder(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.ServiceOrder
	if err := db.Preload("Items").Preload("Vehicle").Preload("Vehicle.Customer").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "service order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(order)
}

// POST /api/service-order/:id/items
// Adds a line item. For service lines with an assigned mechanic the commission
// rate is read once and frozen on the item together with the computed amount;
// later rate changes do not rewrite it. The order total is recomputed from all
// persisted items afterwards.
func AddItem(c *fiber.Ctx) error {
	orderId := strings.TrimSpace(c.Params("id"))

	var in ItemCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.ServiceOrder
	if err := db.First(&order, "id = ?", orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "service order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	itemType := in.Type
	if itemType == "" {
		itemType = models.ItemTypeService
	}

	unitPriceCents := utils.ToCents(in.Price)
	materialCostCents := utils.ToCents(in.MaterialCost)

	var mechanicId *string
	commissionRate := 0.0
	var commissionAmountCents int64

	selected := strings.TrimSpace(in.MechanicId)
	if itemType == models.ItemTypeService && selected != "" && selected != mechanicNone {
		var mechanic models.Mechanic
		if err := db.First(&mechanic, "id = ?", selected).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "mechanic not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		mechanicId = &mechanic.Id
		commissionRate = mechanic.CommissionRate
		commissionAmountCents = finance.CommissionFor(in.Quantity, unitPriceCents, materialCostCents, commissionRate)
	}

	item := models.ServiceItem{
		ServiceOrderId:        order.Id,
		MechanicId:            mechanicId,
		Type:                  itemType,
		Description:           strings.TrimSpace(in.Description),
		Quantity:              in.Quantity,
		UnitPriceCents:        unitPriceCents,
		MaterialCostCents:     materialCostCents,
		CommissionRate:        commissionRate,
		CommissionAmountCents: commissionAmountCents,
	}
	if err := db.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create item")
	}

	if err := recomputeOrderTotal(db, order.Id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update order total")
	}

	return c.JSON(item)
}

// DELETE /api/service-order/:id/items/:itemId
func RemoveItem(c *fiber.Ctx) error {
	orderId := strings.TrimSpace(c.Params("id"))
	itemId := strings.TrimSpace(c.Params("itemId"))

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Delete(&models.ServiceItem{}, "id = ? AND service_order_id = ?", itemId, orderId)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}

	if err := recomputeOrderTotal(db, orderId); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update order total")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// recomputeOrderTotal re-reads every persisted item and writes a fresh gross
// sum. Re-summing instead of incrementing keeps concurrent additions
// eventually consistent: the last writer always lands on the full set.
func recomputeOrderTotal(db *gorm.DB, orderId string) error {
	var items []models.ServiceItem
	if err := db.Where("service_order_id = ?", orderId).Find(&items).Error; err != nil {
		return err
	}
	total := finance.OrderTotal(items)
	return db.Model(&models.ServiceOrder{}).Where("id = ?", orderId).
		Update("total_amount_cents", total).Error
}

// PUT /api/service-order/:id/status
func UpdateOrderStatus(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var in OrderStatusDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Model(&models.ServiceOrder{}).Where("id = ?", id).Update("status", in.Status)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update status")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "service order not found")
	}
	return c.JSON(fiber.Map{"message": "success", "status": in.Status})
}

// PUT /api/service-order/:id/next-service
func UpdateNextServiceDate(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))

	var in NextServiceDTO
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Model(&models.ServiceOrder{}).Where("id = ?", id).Update("next_service_date", in.Date)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update next service date")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "service order not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// PUT /api/service-order/:id/checklist
// Upserts the reception checklist, one per order.
func SaveChecklist(c *fiber.Ctx) error {
	orderId := strings.TrimSpace(c.Params("id"))

	var in ChecklistDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.ServiceOrder
	if err := db.First(&order, "id = ?", orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "service order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.Items == nil {
		in.Items = map[string]bool{}
	}
	blob, err := json.Marshal(in.Items)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid checklist items")
	}

	var checklist models.ReceptionChecklist
	err = db.Where("service_order_id = ?", orderId).First(&checklist).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"fuel_level": strings.TrimSpace(in.FuelLevel),
			"notes":      strings.TrimSpace(in.Notes),
			"items":      datatypes.JSON(blob),
		}
		if err := db.Model(&checklist).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update checklist")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		checklist = models.ReceptionChecklist{
			ServiceOrderId: orderId,
			FuelLevel:      strings.TrimSpace(in.FuelLevel),
			Notes:          strings.TrimSpace(in.Notes),
			Items:          datatypes.JSON(blob),
		}
		if err := db.Create(&checklist).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not save checklist")
		}
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(checklist)
}

// GET /api/service-order/:id/checklist
func GetChecklist(c *fiber.Ctx) error {
	orderId := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var checklist models.ReceptionChecklist
	if err := db.Where("service_order_id = ?", orderId).First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "checklist not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(checklist)
}

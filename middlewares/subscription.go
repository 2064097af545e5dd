package middlewares

import (
	"errors"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireActiveSubscription gates the business routes on the organization's
// subscription state. Trialing counts as active until trial_ends_at passes.
// Billing state itself is written elsewhere (payments processor callbacks are
// outside this service); here we only read it.
func RequireActiveSubscription() fiber.Handler {
	return func(c *fiber.Ctx) error {
		schema, _ := c.Locals("schema").(string)
		if strings.TrimSpace(schema) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "auth context missing")
		}

		var org models.Organization
		if err := database.DB.Where("schema_name = ?", schema).First(&org).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "organization not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "subscription lookup failed")
		}

		switch org.SubscriptionStatus {
		case models.SubscriptionActive:
			return c.Next()
		case models.SubscriptionTrialing:
			if org.TrialEndsAt == nil || time.Now().Before(*org.TrialEndsAt) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusPaymentRequired, "subscription inactive")
	}
}

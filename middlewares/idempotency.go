package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requestHash builds the deterministic fingerprint an Idempotency-Key is
// bound to: method|path|body|schema|user.
func requestHash(method, path string, body []byte, schema, userID string) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{'\n'})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(body)
	h.Write([]byte{'\n'})
	h.Write([]byte(schema))
	h.Write([]byte{'\n'})
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

// Idempotency processes Idempotency-Key for mutating HTTP methods in a
// schema-safe way. It uses its own short transactions with SET LOCAL
// search_path so nothing leaks onto pooled connections, and replays the
// stored response when the same key+request comes back.
func Idempotency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		schema, _ := c.Locals("schema").(string)
		userID, _ := c.Locals("userID").(string)
		if schema == "" || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "auth context missing"})
		}

		reqHash := requestHash(method, c.OriginalURL(), c.Body(), schema, userID)

		// Phase 1: read/create "pending" under a short TX.
		var existing models.IdempotencyKey
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "idempotency schema pin failed")
			}

			if err := tx.Where("key = ?", key).First(&existing).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
				}
				rec := models.IdempotencyKey{
					Key:          key,
					RequestHash:  reqHash,
					Method:       method,
					Path:         c.OriginalURL(),
					TenantSchema: schema,
					UserID:       userID,
				}
				if e2 := tx.Create(&rec).Error; e2 != nil {
					// Unique race: another request inserted first, read it back.
					if e3 := tx.Where("key = ?", key).First(&existing).Error; e3 != nil {
						return fiber.NewError(fiber.StatusInternalServerError, "idempotency create failed")
					}
				} else {
					existing = rec
				}
			}

			if existing.RequestHash != reqHash {
				return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
			}
			if existing.ResponseStatus != 0 && existing.ResponseBody != nil {
				// Completed response stored: short-circuit, no handler run.
				c.Status(existing.ResponseStatus)
				return c.Send(existing.ResponseBody)
			}

			// Pending/in-progress: let the request run.
			return nil
		})
		if err != nil {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Phase 2: store the response under another short TX (best effort).
		_ = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
				return nil
			}
			now := time.Now().UTC()
			resp := c.Response().Body()
			blob := make([]byte, len(resp))
			copy(blob, resp)

			return tx.Model(&models.IdempotencyKey{}).
				Where("key = ?", key).
				Updates(map[string]any{
					"response_status": c.Response().StatusCode(),
					"response_body":   blob,
					"completed_at":    &now,
				}).Error
		})

		return nil
	}
}

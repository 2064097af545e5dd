package database

import (
	"fmt"

	"oficina-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single
// tenant schema. It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns/index tags)
// - Money columns as BIGINT cents, quantity as NUMERIC(10,3)
// - Basic CHECK constraints on money and rates
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		if err := tx.AutoMigrate(
			&models.Customer{},
			&models.Vehicle{},
			&models.Mechanic{},
			&models.ServiceOrder{},
			&models.ServiceItem{},
			&models.ReceptionChecklist{},
			&models.Expense{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		checks := []struct{ table, name, expr string }{
			{"service_items", "chk_service_items_quantity_pos", "quantity > 0"},
			{"service_items", "chk_service_items_unit_price_nonneg", "unit_price_cents >= 0"},
			{"service_items", "chk_service_items_material_nonneg", "material_cost_cents >= 0"},
			{"service_items", "chk_service_items_commission_nonneg", "commission_amount_cents >= 0"},
			{"mechanics", "chk_mechanics_rate_range", "commission_rate >= 0 AND commission_rate <= 100"},
			{"expenses", "chk_expenses_amount_nonneg", "amount_cents >= 0"},
		}
		for _, chk := range checks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, chk.table, chk.name, chk.table, chk.name, chk.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on %s: %w", chk.name, err)
			}
		}

		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_service_items_order ON service_items (service_order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_service_items_mechanic ON service_items (mechanic_id)`,
			`CREATE INDEX IF NOT EXISTS idx_service_orders_status_created ON service_orders (status, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_status_payment ON expenses (status, payment_date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		return nil
	})
}

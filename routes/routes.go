package routes

import (
	"github.com/gofiber/fiber/v2"

	"oficina-backend/controllers"
	"oficina-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Reachable even with a lapsed subscription, so the client can render
	// the paywall.
	protected.Get("/subscription", controllers.GetSubscription)

	// Subscription gate for everything business-related
	protected.Use(middlewares.RequireActiveSubscription())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", controllers.DeleteCustomer)

	// Vehicles (creating one finds-or-creates its owner)
	protected.Post("/vehicle", controllers.CreateVehicle)
	protected.Get("/vehicles", controllers.GetVehicles)
	protected.Get("/vehicle/:id", controllers.GetVehicle)
	protected.Delete("/vehicle/:id", controllers.DeleteVehicle)

	// Mechanics
	protected.Post("/mechanic", controllers.CreateMechanic)
	protected.Get("/mechanics", controllers.GetMechanics)
	protected.Put("/mechanic/:id", controllers.UpdateMechanic)
	protected.Delete("/mechanic/:id", controllers.DeleteMechanic)

	// Service orders (items carry the commission snapshots)
	protected.Post("/service-order", controllers.CreateServiceOrder)
	protected.Get("/service-orders", controllers.GetServiceOrders)
	protected.Get("/service-order/:id", controllers.GetServiceOrder)
	protected.Post("/service-order/:id/items", controllers.AddItem)
	protected.Delete("/service-order/:id/items/:itemId", controllers.RemoveItem)
	protected.Put("/service-order/:id/status", controllers.UpdateOrderStatus)
	protected.Put("/service-order/:id/next-service", controllers.UpdateNextServiceDate)
	protected.Put("/service-order/:id/checklist", controllers.SaveChecklist)
	protected.Get("/service-order/:id/checklist", controllers.GetChecklist)

	// Financial (expenses + monthly statement)
	protected.Post("/expense", controllers.CreateExpense)
	protected.Get("/expenses", controllers.GetExpenses)
	protected.Put("/expense/:id", controllers.UpdateExpense)
	protected.Put("/expense/:id/toggle", controllers.ToggleExpenseStatus)
	protected.Delete("/expense/:id", controllers.DeleteExpense)
	protected.Get("/financial/statement", controllers.GetFinancialStatement)

	// Reports
	protected.Get("/reports/commissions", controllers.GetCommissionReport)
	protected.Get("/reports/commissions/export", controllers.ExportCommissionReport)
	protected.Get("/dashboard", controllers.GetDashboard)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-engine/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustUC       *inventory.AdjustStockUseCase
	AvailabilityUC *inventory.AvailabilityUseCase
	LotUC          *inventory.LotUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: ajustes, traslados, reservas, despacho y consultas (protegido).
	// Las mutaciones exigen rol de bodega; el despacho admite además el rol de
	// servicio "fulfillment" que usa el workflow de órdenes.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.AvailabilityUC)
	mutator := RequireRole("admin", "bodeguero")
	dispatcher := RequireRole("admin", "bodeguero", "fulfillment")
	invGroup.Post("/adjustments", mutator, inventoryHandler.Adjust)
	invGroup.Post("/transfers", mutator, inventoryHandler.Transfer)
	invGroup.Post("/reservations", dispatcher, inventoryHandler.Reserve)
	invGroup.Delete("/reservations", dispatcher, inventoryHandler.Release)
	invGroup.Post("/fulfillment", dispatcher, inventoryHandler.Fulfill)
	invGroup.Get("/stock", inventoryHandler.StockSummary)
	invGroup.Get("/stock/:variantId", inventoryHandler.VariantAvailability)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Lotes (protegido). /reconciliation antes de /:lotNumber para que Fiber
	// no lo capture como parámetro.
	lotHandler := NewLotHandler(deps.LotUC)
	invGroup.Get("/lots/reconciliation", lotHandler.Reconciliation)
	invGroup.Post("/lots", mutator, lotHandler.Create)
	invGroup.Get("/lots", lotHandler.List)
	invGroup.Post("/lots/:lotNumber/consume", dispatcher, lotHandler.Consume)

	// Dashboard e informes (protegido)
	dashboardHandler := NewDashboardHandler(deps.AvailabilityUC)
	protected.Get("/dashboard/low-stock", dashboardHandler.LowStock)
	protected.Get("/reports/low-stock.pdf", dashboardHandler.LowStockReport)
}

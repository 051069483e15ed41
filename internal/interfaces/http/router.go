package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nangulu/pos-api/internal/application/auth"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	PurchaseUC *inventory.PurchaseUseCase
	StockUC    *inventory.StockUseCase
	CatalogUC  *inventory.CatalogUseCase
	SaleUC     *sales.SaleUseCase
	ReversalUC *sales.ReversalUseCase
	ReceiptUC  *sales.ReceiptUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequireAdmin(), authHandler.Register)

	// Inventario y catálogo
	inventoryHandler := NewInventoryHandler(deps.PurchaseUC, deps.StockUC, deps.CatalogUC)
	inv := protected.Group("/inventory")
	inv.Post("/purchases", RequireAdmin(), inventoryHandler.RecordPurchase)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Get("/items/:id/stock", inventoryHandler.GetStock)
	inv.Get("/items/:id/ledger", inventoryHandler.GetLedger)
	inv.Put("/items/:id/price", RequireAdmin(), inventoryHandler.UpdatePrice)
	inv.Delete("/items/:id", RequireAdmin(), inventoryHandler.DeactivateItem)
	inv.Get("/alerts", inventoryHandler.ListAlerts)

	// Ventas
	salesHandler := NewSalesHandler(deps.SaleUC, deps.ReversalUC, deps.ReceiptUC)
	s := protected.Group("/sales")
	s.Post("/", salesHandler.RecordSale)
	s.Get("/", salesHandler.ListMySales)
	s.Get("/:id", salesHandler.GetSale)
	s.Post("/:id/reverse", salesHandler.ReverseSale)
	s.Get("/:id/receipt", salesHandler.GetReceipt)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/auth"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/orders"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	Ledger     *inventory.RegisterMovementUseCase
	OrderUC    *orders.PurchaseOrderUseCase
	OrderPDFUC *orders.PDFUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleComprador, entity.RoleAlmacenista)
	buyers := RequireRole(entity.RoleAdmin, entity.RoleComprador)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	movementHandler := NewMovementHandler(deps.Ledger)
	products.Post("/", buyers, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/low-stock", anyRole, productHandler.ListLowStock)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", buyers, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Patch("/:id/stock", warehouse, productHandler.AdjustStock)
	products.Patch("/:id/cost", RequireRole(entity.RoleAdmin), productHandler.SetCost)
	products.Get("/:id/movements", anyRole, movementHandler.ListByProduct)

	// Movimientos del diario
	movements := protected.Group("/movements")
	movements.Post("/", warehouse, movementHandler.Register)
	movements.Get("/", anyRole, movementHandler.ListByType)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", buyers, supplierHandler.Create)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Put("/:id", buyers, supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Purchase orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	ordersGroup.Post("/", buyers, orderHandler.Create)
	ordersGroup.Get("/", anyRole, orderHandler.List)
	ordersGroup.Get("/:id", anyRole, orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", buyers, orderHandler.ChangeStatus)
	ordersGroup.Get("/:id/pdf", anyRole, orderHandler.DownloadPDF)
	ordersGroup.Get("/:id/movements", anyRole, movementHandler.ListByOrder)
	ordersGroup.Delete("/:id", RequireRole(entity.RoleAdmin), orderHandler.Delete)
}

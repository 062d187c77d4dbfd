package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeansk1/eva4-backend/internal/application/auth"
	"github.com/jeansk1/eva4-backend/internal/application/purchasing"
	"github.com/jeansk1/eva4-backend/internal/application/reports"
	"github.com/jeansk1/eva4-backend/internal/application/sales"
	"github.com/jeansk1/eva4-backend/internal/application/storefront"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CompanyUC   *usecase.CompanyUseCase
	BranchUC    *usecase.BranchUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	InventoryUC *usecase.InventoryUseCase
	PurchaseUC  *purchasing.UseCase
	SaleUC      *sales.UseCase
	OrderUC     *storefront.OrderUseCase
	CartUC      *storefront.CartUseCase
	ReportUC    *reports.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; register gateado por rol dentro del handler.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), authHandler.Register)

	// Catálogo público (lo consume la tienda sin token; con token el
	// listado se acota a la compañía del actor).
	productHandler := NewProductHandler(deps.ProductUC)
	productsPublic := api.Group("/products", OptionalAuthMiddleware(deps.JWTSecret))
	productsPublic.Get("/", productHandler.List)
	productsPublic.Get("/:id", productHandler.GetByID)

	// Inventario: lectura pública; visitantes y clientes quedan acotados a
	// una sucursal concreta dentro del caso de uso.
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventoryPublic := api.Group("/inventory", OptionalAuthMiddleware(deps.JWTSecret))
	inventoryPublic.Get("/", inventoryHandler.List)

	// Tienda pública: órdenes y carrito (visitantes anónimos vía
	// X-Session-Key, usuarios con token).
	orderHandler := NewOrderHandler(deps.OrderUC)
	api.Post("/orders", orderHandler.Create)

	cartHandler := NewCartHandler(deps.CartUC)
	cart := api.Group("/cart", OptionalAuthMiddleware(deps.JWTSecret))
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:productId", cartHandler.UpdateQuantity)
	cart.Delete("/items/:productId", cartHandler.Remove)
	cart.Post("/merge", cartHandler.Merge)
	cart.Post("/checkout", cartHandler.Checkout)

	// Rutas protegidas (requieren Bearer Token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies + suscripciones
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := protected.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/subscribe", companyHandler.Subscribe)
	companies.Get("/:id/subscription", companyHandler.GetSubscription)

	// Branches
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := protected.Group("/branches")
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Products (mutaciones)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Inventory (solo la mutación del punto de reorden; la lectura es pública)
	inventory := protected.Group("/inventory",
		RequireRole(entity.RoleSuperAdmin, entity.RoleTenantAdmin, entity.RoleManager))
	inventory.Put("/reorder-point", inventoryHandler.UpdateReorderPoint)

	// Purchases
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Sales
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.ReceiptPDF)

	// Orders (gestión)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)

	// Reports + dashboard
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/", reportHandler.Get)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
}

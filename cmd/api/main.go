package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jeansk1/eva4-backend/internal/application/auth"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/application/purchasing"
	"github.com/jeansk1/eva4-backend/internal/application/reports"
	"github.com/jeansk1/eva4-backend/internal/application/sales"
	"github.com/jeansk1/eva4-backend/internal/application/storefront"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	infrapdf "github.com/jeansk1/eva4-backend/internal/infrastructure/pdf"
	"github.com/jeansk1/eva4-backend/internal/infrastructure/postgres"
	httpRouter "github.com/jeansk1/eva4-backend/internal/interfaces/http"
	"github.com/jeansk1/eva4-backend/pkg/config"
	"github.com/jeansk1/eva4-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool
	companyRepo := postgres.NewCompanyRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// Runners transaccionales: atan los repos mutables a una misma tx
	purchaseTx := postgres.NewPurchaseTxRunner(pool)
	saleTx := postgres.NewSaleTxRunner(pool)
	storefrontTx := postgres.NewStorefrontTxRunner(pool)

	entitle := entitlement.NewResolver(subscriptionRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()

	authUC := auth.NewUseCase(userRepo, companyRepo, entitle, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, subscriptionRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo, entitle)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	inventoryUC := usecase.NewInventoryUseCase(stockRepo, branchRepo)
	purchaseUC := purchasing.NewUseCase(purchaseTx, supplierRepo, branchRepo, productRepo, purchaseRepo)
	saleUC := sales.NewUseCase(saleTx, branchRepo, productRepo, saleRepo, companyRepo, receiptGen)
	orderUC := storefront.NewOrderUseCase(storefrontTx, productRepo, orderRepo, branchRepo, entitle)
	cartUC := storefront.NewCartUseCase(storefrontTx, cartRepo, productRepo)
	reportUC := reports.NewUseCase(reportRepo, branchRepo, entitle)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		BranchUC:    branchUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		UserUC:      userUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		OrderUC:     orderUC,
		CartUC:      cartUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

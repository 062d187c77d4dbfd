// seed puebla la base de datos con un tenant de demostración: compañía con
// plan premium vigente, dos sucursales, usuarios de cada rol, proveedores,
// catálogo y stock inicial.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel de email/SKU: corridas repetidas reportan duplicados
// y siguen con el resto.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/infrastructure/postgres"
	"github.com/jeansk1/eva4-backend/pkg/config"
	"github.com/jeansk1/eva4-backend/pkg/logger"
)

const demoPassword = "demo1234"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)

	now := time.Now()

	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      "Comercial Austral SpA",
		TaxID:     "76.543.210-K",
		Address:   "Av. Libertad 1024, Valparaíso",
		Phone:     "+56 32 222 0000",
		Email:     "contacto@australspa.cl",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companyRepo.Create(company); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Msg("crear compañía demo")
		}
		log.Warn().Msg("compañía demo ya existe, continuando")
	}
	log.Info().Str("company_id", company.ID).Msg("compañía demo")

	// Plan premium vigente por un año: habilita las 9999 sucursales del
	// plan, reportes y gestión de órdenes de la tienda.
	sub := &entity.Subscription{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		Plan:        entity.PlanPremium,
		MaxBranches: entity.PlanPremium.MaxBranches(),
		StartDate:   now,
		EndDate:     now.AddDate(1, 0, 0),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := subscriptionRepo.Upsert(sub); err != nil {
		log.Fatal().Err(err).Msg("activar suscripción demo")
	}

	branches := []*entity.Branch{
		{ID: uuid.New().String(), CompanyID: company.ID, Name: "Casa Matriz", Address: "Av. Libertad 1024, Valparaíso", Phone: "+56 32 222 0001", Email: "matriz@australspa.cl", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), CompanyID: company.ID, Name: "Sucursal Viña", Address: "Calle Valparaíso 500, Viña del Mar", Phone: "+56 32 222 0002", Email: "vina@australspa.cl", CreatedAt: now, UpdatedAt: now},
	}
	for _, b := range branches {
		if err := branchRepo.Create(b); err != nil {
			log.Fatal().Err(err).Str("branch", b.Name).Msg("crear sucursal demo")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password demo")
	}
	users := []*entity.User{
		{ID: uuid.New().String(), Email: "root@plataforma.cl", Name: "Operador Plataforma", Role: entity.RoleSuperAdmin},
		{ID: uuid.New().String(), CompanyID: company.ID, Email: "admin@australspa.cl", Name: "Ana Torres", Role: entity.RoleTenantAdmin},
		{ID: uuid.New().String(), CompanyID: company.ID, BranchID: branches[0].ID, Email: "gerente@australspa.cl", Name: "Marcelo Rojas", Role: entity.RoleManager},
		{ID: uuid.New().String(), CompanyID: company.ID, BranchID: branches[0].ID, Email: "vendedor@australspa.cl", Name: "Carla Fuentes", Role: entity.RoleSeller},
		{ID: uuid.New().String(), CompanyID: company.ID, Email: "cliente@correo.cl", Name: "Cliente Demo", Role: entity.RoleCustomer},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		u.Status = entity.UserStatusActive
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := userRepo.Create(u); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("email", u.Email).Msg("usuario ya existe, omitiendo")
				continue
			}
			log.Fatal().Err(err).Str("email", u.Email).Msg("crear usuario demo")
		}
	}

	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Name:      "Distribuidora Andina Ltda.",
		TaxID:     "77.111.222-3",
		Contact:   "Pedro Salas",
		Phone:     "+56 2 2345 6789",
		Email:     "ventas@andina.cl",
		Address:   "Camino a Melipilla 9000, Santiago",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := supplierRepo.Create(supplier); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Msg("crear proveedor demo")
	}

	products := []*entity.Product{
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "CAFE-250", Name: "Café de grano 250g", Description: "Tueste medio, origen Colombia", Price: decimal.NewFromInt(6990), Cost: decimal.NewFromInt(4200), Category: entity.CategoryFood},
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "YERBA-1K", Name: "Yerba mate 1kg", Description: "Con palo, estacionada", Price: decimal.NewFromInt(5490), Cost: decimal.NewFromInt(3100), Category: entity.CategoryFood},
		{ID: uuid.New().String(), CompanyID: company.ID, SKU: "TAZA-CER", Name: "Taza cerámica 350ml", Description: "Apta microondas", Price: decimal.NewFromInt(3990), Cost: decimal.NewFromInt(1800), Category: entity.CategoryOther},
	}
	for _, p := range products {
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("sku", p.SKU).Msg("producto ya existe, omitiendo")
				continue
			}
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto demo")
		}
	}

	// Stock inicial en ambas sucursales con punto de reorden.
	for _, b := range branches {
		for _, p := range products {
			row := &entity.Stock{
				BranchID:     b.ID,
				ProductID:    p.ID,
				Quantity:     50,
				ReorderPoint: 10,
				UpdatedAt:    now,
			}
			if err := stockRepo.Upsert(row); err != nil {
				log.Fatal().Err(err).Str("branch", b.Name).Str("sku", p.SKU).Msg("cargar stock demo")
			}
		}
	}

	log.Info().
		Str("admin", "admin@australspa.cl").
		Str("password", demoPassword).
		Msg("datos de demostración cargados")
}

//go:build integration

package postgres_test

// Pruebas de concurrencia contra PostgreSQL real vía testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v
//
// Verifican lo que los fakes en memoria no pueden: que el bloqueo de fila
// (SELECT ... FOR UPDATE) y el incremento por delta serializan mutaciones
// concurrentes de stock sin perder ni duplicar unidades.

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jeansk1/eva4-backend/internal/application/inventory"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
	"github.com/jeansk1/eva4-backend/internal/infrastructure/postgres"
)

const stockDDL = `
	CREATE TABLE IF NOT EXISTS stock (
		branch_id     text        NOT NULL,
		product_id    text        NOT NULL,
		quantity      bigint      NOT NULL DEFAULT 0,
		reorder_point bigint      NOT NULL DEFAULT 0,
		updated_at    timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (branch_id, product_id)
	)`

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("eva4_test"),
		tcPostgres.WithUsername("eva4"),
		tcPostgres.WithPassword("eva4"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, stockDDL)
	require.NoError(t, err)
	return pool
}

func rowQty(t *testing.T, pool *pgxpool.Pool, branchID, productID string) int64 {
	t.Helper()
	var qty int64
	err := pool.QueryRow(context.Background(),
		`SELECT quantity FROM stock WHERE branch_id = $1 AND product_id = $2`,
		branchID, productID,
	).Scan(&qty)
	require.NoError(t, err)
	return qty
}

// Dos ventas concurrentes piden cada una el stock completo de la misma
// fila: exactamente una confirma y la otra falla con stock insuficiente.
// El saldo final es cero, nunca negativo ni duplicado.
func TestVentasConcurrentes_SoloUnaConfirma(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO stock (branch_id, product_id, quantity) VALUES ('b1', 'p1', 5)`)
	require.NoError(t, err)

	runner := postgres.NewSaleTxRunner(pool)
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- runner.Run(ctx, func(_ repository.SaleRepository, stockRepo repository.StockRepository) error {
				return inventory.DecreaseExact(stockRepo, "b1", "p1", 5)
			})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe confirmar")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por stock insuficiente")
	assert.EqualValues(t, 0, rowQty(t, pool, "b1", "p1"))
}

// Dos compras concurrentes estrenan la misma fila (sucursal, producto):
// ambos incrementos deben acumularse, ninguno puede pisarse.
func TestComprasConcurrentes_EstrenanFilaSinPerderIncrementos(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	runner := postgres.NewPurchaseTxRunner(pool)
	qtys := []int64{3, 4}
	errs := make(chan error, len(qtys))
	var wg sync.WaitGroup
	for _, qty := range qtys {
		wg.Add(1)
		go func(qty int64) {
			defer wg.Done()
			errs <- runner.Run(ctx, func(_ repository.PurchaseRepository, stockRepo repository.StockRepository) error {
				return inventory.Increase(stockRepo, "b1", "p2", qty)
			})
		}(qty)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 7, rowQty(t, pool, "b1", "p2"))
}

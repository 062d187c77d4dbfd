package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeansk1/eva4-backend/internal/application/purchasing"
	"github.com/jeansk1/eva4-backend/internal/application/sales"
	"github.com/jeansk1/eva4-backend/internal/application/storefront"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

var _ purchasing.TxRunner = (*PurchaseTxRunner)(nil)
var _ sales.TxRunner = (*SaleTxRunner)(nil)
var _ storefront.TxRunner = (*StorefrontTxRunner)(nil)

// inTx abre una transacción, ejecuta fn y hace Commit o Rollback.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PurchaseTxRunner ejecuta la orquestación de compras dentro de una
// transacción PostgreSQL, con repos atados a la tx.
type PurchaseTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurchaseTxRunner construye el runner con el pool.
func NewPurchaseTxRunner(pool *pgxpool.Pool) *PurchaseTxRunner {
	return &PurchaseTxRunner{pool: pool}
}

// Run inicia la transacción con repos de compras y stock.
func (r *PurchaseTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	stockRepo repository.StockRepository,
) error) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewPurchaseRepository(tx), NewStockRepository(tx))
	})
}

// SaleTxRunner ejecuta la orquestación de ventas POS dentro de una
// transacción PostgreSQL.
type SaleTxRunner struct {
	pool *pgxpool.Pool
}

// NewSaleTxRunner construye el runner con el pool.
func NewSaleTxRunner(pool *pgxpool.Pool) *SaleTxRunner {
	return &SaleTxRunner{pool: pool}
}

// Run inicia la transacción con repos de ventas y stock.
func (r *SaleTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
) error) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx), NewStockRepository(tx))
	})
}

// StorefrontTxRunner ejecuta órdenes y checkout de la tienda pública
// dentro de una transacción PostgreSQL.
type StorefrontTxRunner struct {
	pool *pgxpool.Pool
}

// NewStorefrontTxRunner construye el runner con el pool.
func NewStorefrontTxRunner(pool *pgxpool.Pool) *StorefrontTxRunner {
	return &StorefrontTxRunner{pool: pool}
}

// Run inicia la transacción con repos de órdenes, stock y carrito.
func (r *StorefrontTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	cartRepo repository.CartRepository,
) error) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewStockRepository(tx), NewCartRepository(tx))
	})
}

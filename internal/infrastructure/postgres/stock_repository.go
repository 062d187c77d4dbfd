package postgres

import (
	"context"
	"fmt"

	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Las variantes ForUpdate solo tienen sentido dentro de una
// transacción: el bloqueo de fila dura hasta el Commit/Rollback.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock de (sucursal, producto); si no existe,
// devuelve una fila en cero.
func (r *StockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	query := `
		SELECT branch_id, product_id, quantity, reorder_point, updated_at
		FROM stock WHERE branch_id = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
		&s.BranchID, &s.ProductID, &s.Quantity, &s.ReorderPoint, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.Stock{BranchID: branchID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT ... FOR UPDATE). Una
// fila ausente se devuelve en cero, sin bloqueo: el Upsert posterior
// resuelve el conflicto de inserción concurrente vía ON CONFLICT.
func (r *StockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	query := `
		SELECT branch_id, product_id, quantity, reorder_point, updated_at
		FROM stock WHERE branch_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
		&s.BranchID, &s.ProductID, &s.Quantity, &s.ReorderPoint, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.Stock{BranchID: branchID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// GetAnyForUpdate bloquea y devuelve la fila del producto con saldo
// suficiente y menor branch_id (fulfillment agrupado determinista), o nil
// si ninguna sucursal alcanza por sí sola. SKIP LOCKED no se usa: dos
// órdenes concurrentes deben serializar sobre la misma fila y la segunda
// re-verificar el saldo.
func (r *StockRepo) GetAnyForUpdate(productID string, minQty int64) (*entity.Stock, error) {
	query := `
		SELECT branch_id, product_id, quantity, reorder_point, updated_at
		FROM stock
		WHERE product_id = $1 AND quantity >= $2
		ORDER BY branch_id
		LIMIT 1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, minQty).Scan(
		&s.BranchID, &s.ProductID, &s.Quantity, &s.ReorderPoint, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock any for update: %w", err)
	}
	return &s, nil
}

// Add suma qty a la fila de forma atómica en SQL. El delta se resuelve en
// el DO UPDATE, así dos inserciones concurrentes de la misma fila nueva
// acumulan ambos incrementos en vez de pisarse.
func (r *StockRepo) Add(branchID, productID string, qty int64) error {
	query := `
		INSERT INTO stock (branch_id, product_id, quantity, reorder_point, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, branchID, productID, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza cantidad y punto de reorden de la fila.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (branch_id, product_id, quantity, reorder_point, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reorder_point = EXCLUDED.reorder_point, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.BranchID, stock.ProductID, stock.Quantity, stock.ReorderPoint,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// UpdateReorderPoint ajusta solo el punto de reorden. La cantidad queda
// fuera del UPDATE: un descuento de venta que se confirme en paralelo no
// puede ser revertido por este ajuste.
func (r *StockRepo) UpdateReorderPoint(branchID, productID string, reorderPoint int64) error {
	query := `
		INSERT INTO stock (branch_id, product_id, quantity, reorder_point, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET reorder_point = EXCLUDED.reorder_point, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, branchID, productID, reorderPoint)
	if err != nil {
		return fmt.Errorf("update reorder point: %w", err)
	}
	return nil
}

// ListByCompany lista filas de stock de las sucursales de la compañía;
// branchID opcional filtra una sucursal puntual.
func (r *StockRepo) ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT s.branch_id, s.product_id, s.quantity, s.reorder_point, s.updated_at
		FROM stock s
		JOIN branches b ON b.id = s.branch_id
		WHERE b.company_id = $1 AND ($2 = '' OR s.branch_id = $2)
		ORDER BY s.branch_id, s.product_id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.BranchID, &s.ProductID, &s.Quantity, &s.ReorderPoint, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

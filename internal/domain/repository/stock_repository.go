package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// StockRepository puerto de persistencia para las filas de inventario
// (sucursal, producto). Las variantes ForUpdate deben ejecutarse dentro de
// una transacción: bloquean la fila hasta el Commit/Rollback.
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe, una fila en cero (no nil).
	Get(branchID, productID string) (*entity.Stock, error)
	// GetForUpdate bloquea y devuelve la fila (SELECT ... FOR UPDATE);
	// si no existe, una fila en cero sin bloqueo.
	GetForUpdate(branchID, productID string) (*entity.Stock, error)
	// GetAnyForUpdate bloquea y devuelve ALGUNA fila del producto con
	// Quantity >= minQty, eligiendo la de menor branch_id. Devuelve nil si
	// ninguna sucursal tiene saldo suficiente por sí sola.
	GetAnyForUpdate(productID string, minQty int64) (*entity.Stock, error)
	// Add suma qty de forma atómica, creando la fila si no existe. A
	// diferencia de Upsert no escribe cantidades absolutas: dos Add
	// concurrentes sobre una fila inexistente acumulan ambos deltas.
	Add(branchID, productID string, qty int64) error
	// Upsert inserta o actualiza la cantidad y el punto de reorden.
	Upsert(stock *entity.Stock) error
	// UpdateReorderPoint ajusta solo el punto de reorden, creando la fila
	// en cero si no existe. Nunca toca la cantidad.
	UpdateReorderPoint(branchID, productID string, reorderPoint int64) error
	// ListByCompany lista filas de stock de las sucursales de la compañía;
	// branchID opcional filtra una sucursal puntual.
	ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Stock, error)
}

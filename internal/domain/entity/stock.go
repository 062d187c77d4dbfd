package entity

import "time"

// Stock es la fila autoritativa de inventario por (sucursal, producto).
// Quantity nunca es negativa después de una transacción confirmada; solo el
// ledger de inventario puede mutarla.
type Stock struct {
	BranchID     string
	ProductID    string
	Quantity     int64
	ReorderPoint int64
	UpdatedAt    time.Time
}

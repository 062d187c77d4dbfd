package dto

import "time"

// StockResponse fila de inventario (sucursal, producto).
type StockResponse struct {
	BranchID     string    `json:"branch_id"`
	ProductID    string    `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	ReorderPoint int64     `json:"reorder_point"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockListResponse listado paginado de filas de inventario.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateReorderPointRequest ajusta el punto de reorden de una fila. La
// cantidad de stock no se edita por acá: solo muta vía compras/ventas/órdenes.
type UpdateReorderPointRequest struct {
	BranchID     string `json:"branch_id" validate:"required"`
	ProductID    string `json:"product_id" validate:"required"`
	ReorderPoint int64  `json:"reorder_point" validate:"min=0"`
}

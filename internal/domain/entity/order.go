package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de la tienda pública.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus indica si el estado es uno de los conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order es la cabecera de una orden e-commerce. BranchID es opcional: las
// órdenes públicas nacen sin sucursal asignada y el stock se descuenta de
// cualquier sucursal con saldo suficiente (fulfillment agrupado). Solo el
// estado puede cambiar después de la creación.
type Order struct {
	ID              string
	BranchID        string // vacío = sin sucursal asignada
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Total           decimal.Decimal
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem es una línea de orden. Cada línea se satisface completa desde
// UNA sucursal (sin dividir la cantidad entre sucursales).
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

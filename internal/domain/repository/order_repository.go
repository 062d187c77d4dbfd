package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// OrderFilter filtros de listado de órdenes. CompanyID limita a órdenes de
// sucursales de esa compañía más las sin sucursal asignada.
type OrderFilter struct {
	CompanyID string
	Status    string
	Limit     int
	Offset    int
}

// OrderRepository puerto de persistencia para órdenes de la tienda pública.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	// UpdateStatus cambia el estado (y opcionalmente la sucursal asignada).
	UpdateStatus(order *entity.Order) error
	List(filter OrderFilter) ([]*entity.Order, error)
}

package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// CartRepository puerto de persistencia para líneas de carrito. Las líneas
// se identifican por (usuario, producto) o (sesión anónima, producto).
type CartRepository interface {
	Create(item *entity.CartItem) error
	Update(item *entity.CartItem) error
	Delete(id string) error
	// GetByUserAndProduct devuelve la línea del usuario para el producto o nil.
	GetByUserAndProduct(userID, productID string) (*entity.CartItem, error)
	// GetBySessionAndProduct devuelve la línea anónima de la sesión o nil.
	GetBySessionAndProduct(sessionKey, productID string) (*entity.CartItem, error)
	ListByUser(userID string) ([]*entity.CartItem, error)
	ListBySession(sessionKey string) ([]*entity.CartItem, error)
	DeleteByUser(userID string) error
	DeleteBySession(sessionKey string) error
}

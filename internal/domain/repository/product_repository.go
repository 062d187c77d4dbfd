package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListAll(limit, offset int) ([]*entity.Product, error)
}

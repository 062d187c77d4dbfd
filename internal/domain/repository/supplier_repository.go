package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	ListAll(limit, offset int) ([]*entity.Supplier, error)
}

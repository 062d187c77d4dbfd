package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// PurchaseRepository puerto de persistencia para compras a proveedor.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Purchase, error)
	ListAll(limit, offset int) ([]*entity.Purchase, error)
}

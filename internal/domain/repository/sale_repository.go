package repository

import (
	"time"

	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas. Campos vacíos no filtran.
type SaleFilter struct {
	CompanyID string
	BranchID  string
	SellerID  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SaleRepository puerto de persistencia para ventas POS.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}

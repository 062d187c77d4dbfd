package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryFood        = "food"
	CategoryBeverages   = "beverages"
	CategoryCleaning    = "cleaning"
	CategoryOther       = "other"
)

// ValidCategory indica si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryBeverages, CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// Product representa un producto del catálogo de una compañía. El catálogo
// es compartido por todas las sucursales de la compañía; el stock por
// sucursal vive en Stock. El SKU es único en todo el sistema.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

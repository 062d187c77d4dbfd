package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es la cabecera de una compra a proveedor. Total se deriva de las
// líneas (Σ subtotales); cabecera y líneas son inmutables tras crearse.
type Purchase struct {
	ID            string
	CompanyID     string
	SupplierID    string
	BranchID      string
	InvoiceNumber string
	Date          time.Time // no puede ser futura
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// PurchaseItem es una línea de compra. Subtotal = Quantity × UnitPrice.
// Cada línea suma Quantity al stock de (BranchID de la compra, ProductID).
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

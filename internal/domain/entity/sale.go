package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de una venta POS.
const (
	PaymentCash     = "cash"
	PaymentDebit    = "debit"
	PaymentCredit   = "credit"
	PaymentTransfer = "transfer"
)

// ValidPaymentMethod indica si el método de pago es uno de los conocidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// Sale es la cabecera de una venta POS. SellerID debe pertenecer a un
// usuario con rol seller; Total se deriva de las líneas. Inmutable tras
// crearse.
type Sale struct {
	ID            string
	CompanyID     string
	BranchID      string
	SellerID      string
	Total         decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
}

// SaleItem es una línea de venta. El precio unitario se toma del catálogo al
// momento de la venta, nunca del cliente. Cada línea descuenta Quantity del
// stock exacto de la sucursal de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra a proveedor.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest compra completa: cabecera más líneas.
type CreatePurchaseRequest struct {
	BranchID      string                `json:"branch_id" validate:"required"`
	SupplierID    string                `json:"supplier_id" validate:"required"`
	InvoiceNumber string                `json:"invoice_number" validate:"required"`
	Date          string                `json:"date" validate:"required,datetime=2006-01-02"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse línea persistida.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra persistida con sus líneas.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	SupplierID    string                 `json:"supplier_id"`
	BranchID      string                 `json:"branch_id"`
	InvoiceNumber string                 `json:"invoice_number"`
	Date          string                 `json:"date"`
	Total         decimal.Decimal        `json:"total"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// PurchaseListResponse listado paginado de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

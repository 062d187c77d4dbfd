package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchStockReport resumen de stock de una sucursal.
type BranchStockReport struct {
	BranchID      string
	BranchName    string
	TotalUnits    int64 // Σ quantity
	TotalProducts int
	LowStock      int // filas con quantity <= reorder_point
	OutOfStock    int // filas con quantity = 0
}

// SalesSummary agregado de ventas de un período.
type SalesSummary struct {
	Count int
	Total decimal.Decimal
}

// ReportRepository puerto de consultas de agregación (solo lectura). No
// forma parte del núcleo transaccional.
type ReportRepository interface {
	StockByBranch(companyID string) ([]BranchStockReport, error)
	// SalesBetween suma y cuenta ventas de la compañía; sellerID opcional
	// restringe a un vendedor.
	SalesBetween(companyID, sellerID string, from, to *time.Time) (*SalesSummary, error)
	LowStockCount(companyID string) (int, error)
	PendingOrderCount(companyID string) (int, error)
	ProductCount(companyID string) (int, error)
}

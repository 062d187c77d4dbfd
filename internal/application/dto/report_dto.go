package dto

import "github.com/shopspring/decimal"

// StockReportRow existencias agregadas por sucursal.
type StockReportRow struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	TotalUnits int64  `json:"total_units"`
	Products   int64  `json:"products"`
	LowStock   int64  `json:"low_stock"`
	OutOfStock int64  `json:"out_of_stock"`
}

// StockReportResponse reporte de inventario por sucursal.
type StockReportResponse struct {
	Rows []StockReportRow `json:"rows"`
}

// SalesReportRequest rango de fechas del reporte de ventas.
type SalesReportRequest struct {
	From     string `json:"from" query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `json:"to" query:"to" validate:"omitempty,datetime=2006-01-02"`
	BranchID string `json:"branch_id" query:"branch_id"`
}

// SalesReportResponse resumen de ventas en el rango pedido.
type SalesReportResponse struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	SalesCount int64           `json:"sales_count"`
	TotalSold  decimal.Decimal `json:"total_sold"`
	AvgTicket  decimal.Decimal `json:"avg_ticket"`
}

// DashboardResponse indicadores rápidos del panel principal. Las ventas
// acumulan el mes en curso; PendingOrders solo se informa con plan premium
// vigente (queda en cero en los demás planes).
type DashboardResponse struct {
	SalesMonth    int64           `json:"sales_month"`
	TotalMonth    decimal.Decimal `json:"total_month"`
	LowStockItems int64           `json:"low_stock_items"`
	PendingOrders int64           `json:"pending_orders"`
	Branches      int64           `json:"branches"`
	Products      int64           `json:"products"`
}

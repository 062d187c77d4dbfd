package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// StockByBranch agrega el stock por sucursal de una compañía. Incluye
// sucursales sin filas de stock con todo en cero.
func (r *ReportRepo) StockByBranch(companyID string) ([]repository.BranchStockReport, error) {
	query := `
		SELECT b.id, b.name,
		       COALESCE(SUM(s.quantity), 0),
		       COUNT(s.product_id),
		       COUNT(*) FILTER (WHERE s.quantity <= s.reorder_point),
		       COUNT(*) FILTER (WHERE s.quantity = 0)
		FROM branches b
		LEFT JOIN stock s ON s.branch_id = b.id
		WHERE b.company_id = $1
		GROUP BY b.id, b.name
		ORDER BY b.name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("stock by branch: %w", err)
	}
	defer rows.Close()

	var report []repository.BranchStockReport
	for rows.Next() {
		var row repository.BranchStockReport
		if err := rows.Scan(&row.BranchID, &row.BranchName, &row.TotalUnits, &row.TotalProducts, &row.LowStock, &row.OutOfStock); err != nil {
			return nil, fmt.Errorf("scan stock report: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// SalesBetween suma y cuenta ventas de la compañía en el período; sellerID
// opcional restringe a un vendedor.
func (r *ReportRepo) SalesBetween(companyID, sellerID string, from, to *time.Time) (*repository.SalesSummary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE company_id = $1`
	args := []any{companyID}

	if sellerID != "" {
		args = append(args, sellerID)
		query += fmt.Sprintf(" AND seller_id = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var summary repository.SalesSummary
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(&summary.Count, &total)
	if err != nil {
		return nil, fmt.Errorf("sales between: %w", err)
	}
	summary.Total = total
	return &summary, nil
}

// LowStockCount cuenta filas de stock en o bajo el punto de reposición.
func (r *ReportRepo) LowStockCount(companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM stock s
		JOIN branches b ON b.id = s.branch_id
		WHERE b.company_id = $1 AND s.quantity <= s.reorder_point`
	var count int
	if err := r.pool.QueryRow(context.Background(), query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// PendingOrderCount cuenta órdenes pendientes visibles para la compañía:
// las de sus sucursales más las sin sucursal asignada.
func (r *ReportRepo) PendingOrderCount(companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE status = 'pending'
		  AND (branch_id IS NULL OR branch_id IN (SELECT id FROM branches WHERE company_id = $1))`
	var count int
	if err := r.pool.QueryRow(context.Background(), query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("pending order count: %w", err)
	}
	return count, nil
}

// ProductCount cuenta productos del catálogo de la compañía.
func (r *ReportRepo) ProductCount(companyID string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("product count: %w", err)
	}
	return count, nil
}

// Package reports arma los reportes agregados y el dashboard. Los reportes
// requieren rol admin o gerente y plan estándar o superior vigente; el
// dashboard es parte de la operación diaria y no está gated por plan,
// aunque las órdenes pendientes solo se informan con premium vigente.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// UseCase consultas de agregación de solo lectura.
type UseCase struct {
	reportRepo repository.ReportRepository
	branchRepo repository.BranchRepository
	entitle    *entitlement.Resolver
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository, branchRepo repository.BranchRepository, entitle *entitlement.Resolver) *UseCase {
	return &UseCase{reportRepo: reportRepo, branchRepo: branchRepo, entitle: entitle}
}

// StockReport existencias por sucursal (plan ≥ estándar vigente).
func (uc *UseCase) StockReport(actor access.Actor, companyID string) (*dto.StockReportResponse, error) {
	companyID, err := uc.requireReports(actor, companyID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.StockByBranch(companyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockReportResponse{Rows: []dto.StockReportRow{}}
	for _, r := range rows {
		if actor.BranchID != "" && r.BranchID != actor.BranchID {
			continue
		}
		resp.Rows = append(resp.Rows, dto.StockReportRow{
			BranchID:   r.BranchID,
			BranchName: r.BranchName,
			Products:   int64(r.TotalProducts),
			LowStock:   int64(r.LowStock),
			OutOfStock: int64(r.OutOfStock),
			TotalUnits: r.TotalUnits,
		})
	}
	return resp, nil
}

// SalesReport resumen de ventas en un rango (plan ≥ estándar vigente,
// rol admin o gerente).
func (uc *UseCase) SalesReport(actor access.Actor, companyID string, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	companyID, err := uc.requireReports(actor, companyID)
	if err != nil {
		return nil, err
	}
	var from, to *time.Time
	if in.From != "" {
		t, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		from = &t
	}
	if in.To != "" {
		t, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// inclusivo hasta el fin del día
		t = t.Add(24*time.Hour - time.Second)
		to = &t
	}
	summary, err := uc.reportRepo.SalesBetween(companyID, "", from, to)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if summary.Count > 0 {
		avg = summary.Total.Div(decimal.NewFromInt(int64(summary.Count))).Round(2)
	}
	return &dto.SalesReportResponse{
		From:       in.From,
		To:         in.To,
		SalesCount: int64(summary.Count),
		TotalSold:  summary.Total,
		AvgTicket:  avg,
	}, nil
}

// Dashboard indicadores del mes en curso para cualquier actor de tenant.
// Un vendedor ve solo sus propias ventas; las órdenes pendientes se
// informan únicamente con plan premium vigente.
func (uc *UseCase) Dashboard(actor access.Actor, companyID string) (*dto.DashboardResponse, error) {
	if actor.Role == entity.RoleSuperAdmin {
		if companyID == "" {
			return nil, domain.ErrInvalidInput
		}
	} else {
		if actor.Role == entity.RoleCustomer || actor.CompanyID == "" {
			return nil, domain.ErrForbidden
		}
		if companyID != "" && companyID != actor.CompanyID {
			return nil, domain.ErrForbidden
		}
		companyID = actor.CompanyID
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	sellerID := ""
	if actor.Role == entity.RoleSeller {
		sellerID = actor.ID
	}
	sales, err := uc.reportRepo.SalesBetween(companyID, sellerID, &monthStart, nil)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.reportRepo.LowStockCount(companyID)
	if err != nil {
		return nil, err
	}
	pending := 0
	ent, err := uc.entitle.Resolve(companyID)
	if err != nil {
		return nil, err
	}
	if ent.AllowsStorefrontOrders(now) {
		pending, err = uc.reportRepo.PendingOrderCount(companyID)
		if err != nil {
			return nil, err
		}
	}
	products, err := uc.reportRepo.ProductCount(companyID)
	if err != nil {
		return nil, err
	}
	branches, err := uc.branchRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		SalesMonth:    int64(sales.Count),
		TotalMonth:    sales.Total,
		LowStockItems: int64(lowStock),
		PendingOrders: int64(pending),
		Branches:      int64(branches),
		Products:      int64(products),
	}, nil
}

// requireReports resuelve la compañía objetivo y valida el gate: rol admin
// o gerente, con plan estándar o superior vigente. El super_admin consulta
// cualquier compañía sin gate de plan.
func (uc *UseCase) requireReports(actor access.Actor, companyID string) (string, error) {
	if actor.Role == entity.RoleSuperAdmin {
		if companyID == "" {
			return "", domain.ErrInvalidInput
		}
		return companyID, nil
	}
	if !access.IsAdminOrManager(actor) || actor.CompanyID == "" {
		return "", domain.ErrForbidden
	}
	ent, err := uc.entitle.Resolve(actor.CompanyID)
	if err != nil {
		return "", err
	}
	if !ent.AllowsReports(time.Now()) {
		return "", domain.ErrForbidden
	}
	return actor.CompanyID, nil
}

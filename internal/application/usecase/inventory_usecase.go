package usecase

import (
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// InventoryUseCase lectura de inventario y ajuste del punto de reorden.
// La cantidad de stock NO se edita por acá: solo muta vía el ledger.
type InventoryUseCase struct {
	stockRepo  repository.StockRepository
	branchRepo repository.BranchRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(stockRepo repository.StockRepository, branchRepo repository.BranchRepository) *InventoryUseCase {
	return &InventoryUseCase{stockRepo: stockRepo, branchRepo: branchRepo}
}

// List lista filas de stock. La lectura es pública: un actor de tenant
// queda acotado a su compañía/sucursal; visitantes, clientes y super_admin
// deben nombrar una sucursal concreta para no listar el sistema entero.
func (uc *InventoryUseCase) List(actor access.Actor, branchID string, page dto.PageRequest) (*dto.StockListResponse, error) {
	page.DefaultPage()
	scope := access.VisibleScope(actor)
	var companyID string
	if scope.All || scope.None || scope.CompanyID == "" {
		if branchID == "" {
			return nil, domain.ErrInvalidInput
		}
		branch, err := uc.branchRepo.GetByID(branchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, domain.ErrNotFound
		}
		companyID = branch.CompanyID
	} else {
		if scope.BranchID != "" {
			branchID = scope.BranchID
		}
		companyID = scope.CompanyID
	}
	list, err := uc.stockRepo.ListByCompany(companyID, branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			BranchID:     s.BranchID,
			ProductID:    s.ProductID,
			Quantity:     s.Quantity,
			ReorderPoint: s.ReorderPoint,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateReorderPoint ajusta el umbral de reposición de una fila; crea la
// fila en cero si no existe. No toca la cantidad.
func (uc *InventoryUseCase) UpdateReorderPoint(actor access.Actor, in dto.UpdateReorderPointRequest) (*dto.StockResponse, error) {
	if !access.IsAdminOrManager(actor) {
		return nil, domain.ErrForbidden
	}
	if in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if !access.SameCompany(actor, branch.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if actor.BranchID != "" && actor.BranchID != branch.ID {
		return nil, domain.ErrForbidden
	}
	// Solo la columna reorder_point: escribir la fila completa reescribiría
	// una cantidad leída antes y desharía ventas confirmadas en el medio.
	if err := uc.stockRepo.UpdateReorderPoint(in.BranchID, in.ProductID, in.ReorderPoint); err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.Get(in.BranchID, in.ProductID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		BranchID:     stock.BranchID,
		ProductID:    stock.ProductID,
		Quantity:     stock.Quantity,
		ReorderPoint: stock.ReorderPoint,
		UpdatedAt:    stock.UpdatedAt,
	}, nil
}

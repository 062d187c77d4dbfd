// Package purchasing orquesta el registro transaccional de compras a
// proveedor: cabecera + líneas + aumentos de stock en una sola transacción.
package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/inventory"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// UseCase registra compras de forma transaccional. Las validaciones de
// pertenencia (proveedor, sucursal, productos de la compañía) se hacen
// fuera de la transacción; la mutación de stock adentro.
type UseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create registra una compra completa. Valida que proveedor, sucursal y
// todos los productos pertenezcan a la compañía del actor y que la fecha no
// sea futura; luego, dentro de una transacción, persiste cabecera y líneas
// y suma cada cantidad al stock de la sucursal.
func (uc *UseCase) Create(ctx context.Context, actor access.Actor, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !access.IsAdminOrManager(actor) {
		return nil, domain.ErrForbidden
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if !access.SameCompany(actor, supplier.CompanyID) {
		return nil, domain.ErrForbidden
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if branch.CompanyID != supplier.CompanyID {
		return nil, domain.ErrInvalidInput
	}
	if actor.BranchID != "" && actor.BranchID != branch.ID {
		return nil, domain.ErrForbidden
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	// La fecha de la factura no puede ser futura (hoy sí vale: la fecha
	// parseada queda a medianoche).
	if date.After(time.Now()) {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	items := make([]*entity.PurchaseItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != supplier.CompanyID {
			return nil, domain.ErrForbidden
		}
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		total = total.Add(subtotal)
		items = append(items, &entity.PurchaseItem{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		CompanyID:     supplier.CompanyID,
		SupplierID:    supplier.ID,
		BranchID:      branch.ID,
		InvoiceNumber: in.InvoiceNumber,
		Date:          date,
		Total:         total,
		CreatedAt:     time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range items {
			item.PurchaseID = purchase.ID
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			if err := inventory.Increase(stockRepo, purchase.BranchID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// GetByID obtiene una compra con sus líneas, validando visibilidad.
func (uc *UseCase) GetByID(actor access.Actor, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	scope := access.VisibleScope(actor)
	if scope.None ||
		(!scope.All && scope.CompanyID != purchase.CompanyID) ||
		(scope.BranchID != "" && scope.BranchID != purchase.BranchID) {
		return nil, domain.ErrForbidden
	}
	items, err := uc.purchaseRepo.GetItems(purchase.ID)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// List lista compras según el alcance del actor.
func (uc *UseCase) List(actor access.Actor, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	scope := access.VisibleScope(actor)
	if scope.None {
		return &dto.PurchaseListResponse{Items: []dto.PurchaseResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
	}
	var (
		list []*entity.Purchase
		err  error
	)
	if scope.All {
		list, err = uc.purchaseRepo.ListAll(page.Limit, page.Offset)
	} else {
		list, err = uc.purchaseRepo.ListByCompany(scope.CompanyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		if scope.BranchID != "" && p.BranchID != scope.BranchID {
			continue
		}
		items = append(items, *toPurchaseResponse(p, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		SupplierID:    p.SupplierID,
		BranchID:      p.BranchID,
		InvoiceNumber: p.InvoiceNumber,
		Date:          p.Date.Format("2006-01-02"),
		Total:         p.Total,
		CreatedAt:     p.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}

// Package sales orquesta el registro transaccional de ventas POS: cada
// línea descuenta stock de la sucursal exacta de la venta, con el precio
// del catálogo al momento de vender.
package sales

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

// UseCase registra ventas de forma transaccional.
type UseCase struct {
	txRunner    TxRunner
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
	receipts    ReceiptGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	receipts ReceiptGenerator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		companyRepo: companyRepo,
		receipts:    receipts,
	}
}

// Create registra una venta POS. A un actor con sucursal asignada se le
// fuerza esa sucursal, ignorando la del request; el resto debe indicarla.
// El precio unitario sale SIEMPRE del catálogo, nunca del cliente. Dentro
// de la transacción cada línea descuenta stock exacto de la sucursal; si
// alguna no alcanza, toda la venta se revierte.
func (uc *UseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !access.CanRecordSale(actor) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	branchID := in.BranchID
	if actor.BranchID != "" {
		branchID = actor.BranchID
	}
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
	if !access.SameCompany(actor, branch.CompanyID) {
		return nil, domain.ErrForbidden
	}

	total := decimal.Zero
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != branch.CompanyID {
			return nil, domain.ErrForbidden
		}
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
		total = total.Add(subtotal)
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     branch.CompanyID,
		BranchID:      branch.ID,
		SellerID:      actor.ID,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			if err := inventory.DecreaseExact(stockRepo, sale.BranchID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// GetByID obtiene una venta con sus líneas, validando visibilidad: un
// vendedor ve solo sus propias ventas.
func (uc *UseCase) GetByID(actor access.Actor, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, access.Resource{CompanyID: sale.CompanyID, BranchID: sale.BranchID, OwnerID: sale.SellerID}) {
		return nil, domain.ErrForbidden
	}
	// Dentro de su sucursal, un vendedor solo ve SUS ventas.
	if actor.Role == entity.RoleSeller && sale.SellerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// List lista ventas según el alcance del actor; un vendedor queda limitado
// a sus propias ventas además de su sucursal.
func (uc *UseCase) List(actor access.Actor, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	scope := access.VisibleScope(actor)
	if scope.None {
		return &dto.SaleListResponse{Items: []dto.SaleResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
	}
	filter := repository.SaleFilter{Limit: page.Limit, Offset: page.Offset}
	if !scope.All {
		filter.CompanyID = scope.CompanyID
		filter.BranchID = scope.BranchID
		filter.SellerID = scope.OwnerID
	}
	list, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ReceiptPDF genera el comprobante PDF de una venta. Aplica la misma
// visibilidad que GetByID.
func (uc *UseCase) ReceiptPDF(ctx context.Context, actor access.Actor, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, access.Resource{CompanyID: sale.CompanyID, BranchID: sale.BranchID, OwnerID: sale.SellerID}) {
		return nil, domain.ErrForbidden
	}
	if actor.Role == entity.RoleSeller && sale.SellerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(sale.CompanyID)
	if err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByID(sale.BranchID)
	if err != nil {
		return nil, err
	}
	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := item.ProductID
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return uc.receipts.GenerateReceiptPDF(ctx, sale, company, branch, lines)
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		BranchID:      s.BranchID,
		SellerID:      s.SellerID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}

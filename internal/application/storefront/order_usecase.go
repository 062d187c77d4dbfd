// Package storefront implementa la tienda pública: órdenes con fulfillment
// agrupado (cualquier sucursal con saldo) y el carrito de compras.
package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/application/inventory"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// OrderUseCase registra órdenes de la tienda y gestiona su ciclo de estado.
// La creación es pública; el listado y la gestión requieren plan premium
// vigente (Entitlement Resolver).
type OrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	branchRepo  repository.BranchRepository
	entitle     *entitlement.Resolver
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	branchRepo repository.BranchRepository,
	entitle *entitlement.Resolver,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		branchRepo:  branchRepo,
		entitle:     entitle,
	}
}

// Create registra una orden pública con estado pending. Cada línea descuenta
// stock de ALGUNA sucursal con saldo suficiente (fulfillment agrupado); si
// ninguna alcanza para alguna línea, toda la orden se rechaza y nada queda
// persistido. Sin precio del cliente (cero) se usa el del catálogo.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	total := decimal.Zero
	items := make([]*entity.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price := line.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		total = total.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
		items = append(items, &entity.OrderItem{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Total:           total,
		Status:          entity.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.CartRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := inventory.DecreasePooled(stockRepo, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// GetByID obtiene una orden con sus líneas (gestión, requiere premium).
func (uc *OrderUseCase) GetByID(actor access.Actor, id string) (*dto.OrderResponse, error) {
	if err := uc.requireManagement(actor); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkOrderVisible(actor, order); err != nil {
		return nil, err
	}
	items, err := uc.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// List lista órdenes (gestión, requiere premium vigente).
func (uc *OrderUseCase) List(actor access.Actor, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if err := uc.requireManagement(actor); err != nil {
		return nil, err
	}
	page.DefaultPage()
	filter := repository.OrderFilter{Status: status, Limit: page.Limit, Offset: page.Offset}
	if actor.Role != entity.RoleSuperAdmin {
		filter.CompanyID = actor.CompanyID
	}
	list, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus cambia el estado de la orden y opcionalmente le asigna una
// sucursal (gestión, requiere premium vigente). Solo el estado es mutable
// tras la creación.
func (uc *OrderUseCase) UpdateStatus(actor access.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := uc.requireManagement(actor); err != nil {
		return nil, err
	}
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkOrderVisible(actor, order); err != nil {
		return nil, err
	}
	if in.BranchID != "" {
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
		order.BranchID = branch.ID
	}
	order.Status = in.Status
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order, nil), nil
}

// requireManagement valida rol de gestión y plan premium vigente. El
// super_admin no está gated por plan.
func (uc *OrderUseCase) requireManagement(actor access.Actor) error {
	if actor.Role == entity.RoleSuperAdmin {
		return nil
	}
	if !access.IsAdminOrManager(actor) {
		return domain.ErrForbidden
	}
	ent, err := uc.entitle.Resolve(actor.CompanyID)
	if err != nil {
		return err
	}
	if !ent.AllowsStorefrontOrders(time.Now()) {
		return domain.ErrForbidden
	}
	return nil
}

// checkOrderVisible acota la gestión de órdenes a las de sucursales del
// tenant del actor; las órdenes sin sucursal asignada son visibles para
// cualquier gestor con plan habilitado.
func (uc *OrderUseCase) checkOrderVisible(actor access.Actor, order *entity.Order) error {
	if actor.Role == entity.RoleSuperAdmin || order.BranchID == "" {
		return nil
	}
	branch, err := uc.branchRepo.GetByID(order.BranchID)
	if err != nil {
		return err
	}
	if branch == nil || !access.SameCompany(actor, branch.CompanyID) {
		return domain.ErrForbidden
	}
	return nil
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              o.ID,
		BranchID:        o.BranchID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Total:           o.Total,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp
}

package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/inventory"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// CartKey identifica el dueño de un carrito: un usuario autenticado o una
// sesión anónima. Siempre viaja explícito, nunca se lee de estado ambiente.
type CartKey struct {
	UserID     string
	SessionKey string
}

// Valid indica que exactamente uno de los dos identificadores está presente.
func (k CartKey) Valid() bool {
	return (k.UserID != "") != (k.SessionKey != "")
}

// CartUseCase gestiona el carrito de compras. El carrito es solo un área de
// staging: no reserva stock ni participa del ledger hasta el checkout.
type CartUseCase struct {
	txRunner    TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(txRunner TxRunner, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{txRunner: txRunner, cartRepo: cartRepo, productRepo: productRepo}
}

// Add agrega un producto al carrito; si ya hay una línea para ese producto,
// incrementa la cantidad.
func (uc *CartUseCase) Add(key CartKey, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if !key.Valid() || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.getLine(key, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += in.Quantity
		if err := uc.cartRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		item := &entity.CartItem{
			ID:         uuid.New().String(),
			UserID:     key.UserID,
			SessionKey: key.SessionKey,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			AddedAt:    time.Now(),
		}
		if err := uc.cartRepo.Create(item); err != nil {
			return nil, err
		}
	}
	return uc.Get(key)
}

// UpdateQuantity fija la cantidad exacta de la línea del producto.
func (uc *CartUseCase) UpdateQuantity(key CartKey, productID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if !key.Valid() || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.getLine(key, productID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	line.Quantity = in.Quantity
	if err := uc.cartRepo.Update(line); err != nil {
		return nil, err
	}
	return uc.Get(key)
}

// Remove quita la línea del producto del carrito.
func (uc *CartUseCase) Remove(key CartKey, productID string) (*dto.CartResponse, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.getLine(key, productID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.cartRepo.Delete(line.ID); err != nil {
		return nil, err
	}
	return uc.Get(key)
}

// Get devuelve el carrito enriquecido con nombre y precio de catálogo.
func (uc *CartUseCase) Get(key CartKey) (*dto.CartResponse, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.listLines(key)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{Items: []dto.CartItemResponse{}, Total: decimal.Zero}
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		name := line.ProductID
		price := decimal.Zero
		if product != nil {
			name = product.Name
			price = product.Price
		}
		subtotal := price.Mul(decimal.NewFromInt(line.Quantity))
		resp.Total = resp.Total.Add(subtotal)
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: name,
			UnitPrice:   price,
			Quantity:    line.Quantity,
			Subtotal:    subtotal,
			AddedAt:     line.AddedAt,
		})
	}
	return resp, nil
}

// Merge absorbe el carrito anónimo de la sesión en el del usuario al hacer
// login: si el usuario ya tiene línea para el producto, suma cantidades y
// descarta la anónima; si no, la línea anónima pasa a ser del usuario.
func (uc *CartUseCase) Merge(sessionKey, userID string) error {
	if sessionKey == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	lines, err := uc.cartRepo.ListBySession(sessionKey)
	if err != nil {
		return err
	}
	for _, line := range lines {
		owned, err := uc.cartRepo.GetByUserAndProduct(userID, line.ProductID)
		if err != nil {
			return err
		}
		if owned != nil {
			owned.Quantity += line.Quantity
			if err := uc.cartRepo.Update(owned); err != nil {
				return err
			}
			if err := uc.cartRepo.Delete(line.ID); err != nil {
				return err
			}
			continue
		}
		line.UserID = userID
		line.SessionKey = ""
		if err := uc.cartRepo.Update(line); err != nil {
			return err
		}
	}
	return nil
}

// Checkout convierte el carrito en una orden pending con precios de
// catálogo y descuento agrupado de stock; si todo confirma, el carrito
// queda vacío en la misma transacción. Un carrito vacío no genera orden.
func (uc *CartUseCase) Checkout(ctx context.Context, key CartKey, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.listLines(key)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
		total = total.Add(subtotal)
		items = append(items, &entity.OrderItem{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
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
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		cartRepo repository.CartRepository,
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
		if key.UserID != "" {
			return cartRepo.DeleteByUser(key.UserID)
		}
		return cartRepo.DeleteBySession(key.SessionKey)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

func (uc *CartUseCase) getLine(key CartKey, productID string) (*entity.CartItem, error) {
	if key.UserID != "" {
		return uc.cartRepo.GetByUserAndProduct(key.UserID, productID)
	}
	return uc.cartRepo.GetBySessionAndProduct(key.SessionKey, productID)
}

func (uc *CartUseCase) listLines(key CartKey) ([]*entity.CartItem, error) {
	if key.UserID != "" {
		return uc.cartRepo.ListByUser(key.UserID)
	}
	return uc.cartRepo.ListBySession(key.SessionKey)
}

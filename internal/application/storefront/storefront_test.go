package storefront_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/application/storefront"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

type fakeProductRepo struct{ items map[string]*entity.Product }

func (f *fakeProductRepo) Create(p *entity.Product) error             { f.items[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.items[id], nil }
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error)   { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error               { return nil }
func (f *fakeProductRepo) Delete(string) error                        { return nil }
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListAll(int, int) ([]*entity.Product, error) { return nil, nil }

type fakeBranchRepo struct{ items map[string]*entity.Branch }

func (f *fakeBranchRepo) Create(b *entity.Branch) error             { f.items[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.items[id], nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error               { return nil }
func (f *fakeBranchRepo) Delete(string) error                       { return nil }
func (f *fakeBranchRepo) ListByCompany(string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}
func (f *fakeBranchRepo) ListAll(int, int) ([]*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) CountByCompany(string) (int, error)         { return len(f.items), nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  []*entity.OrderItem
}

func (f *fakeOrderRepo) Create(o *entity.Order) error { f.orders[o.ID] = o; return nil }
func (f *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	f.items = append(f.items, item)
	return nil
}
func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return f.orders[id], nil }
func (f *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, item := range f.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) UpdateStatus(o *entity.Order) error { f.orders[o.ID] = o; return nil }
func (f *fakeOrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type fakeStockRepo struct{ rows map[string]*entity.Stock }

func stockKey(branchID, productID string) string { return branchID + "|" + productID }

func (f *fakeStockRepo) set(branchID, productID string, qty int64) {
	f.rows[stockKey(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: qty}
}
func (f *fakeStockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[stockKey(branchID, productID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{BranchID: branchID, ProductID: productID}, nil
}
func (f *fakeStockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	return f.Get(branchID, productID)
}
func (f *fakeStockRepo) GetAnyForUpdate(productID string, minQty int64) (*entity.Stock, error) {
	keys := make([]string, 0, len(f.rows))
	for k := range f.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s := f.rows[k]
		if s.ProductID == productID && s.Quantity >= minQty {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeStockRepo) Add(branchID, productID string, qty int64) error {
	if s, ok := f.rows[stockKey(branchID, productID)]; ok {
		s.Quantity += qty
		return nil
	}
	f.rows[stockKey(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: qty}
	return nil
}
func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	f.rows[stockKey(s.BranchID, s.ProductID)] = &cp
	return nil
}
func (f *fakeStockRepo) UpdateReorderPoint(branchID, productID string, reorderPoint int64) error {
	if s, ok := f.rows[stockKey(branchID, productID)]; ok {
		s.ReorderPoint = reorderPoint
		return nil
	}
	f.rows[stockKey(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, ReorderPoint: reorderPoint}
	return nil
}
func (f *fakeStockRepo) ListByCompany(string, string, int, int) ([]*entity.Stock, error) {
	return nil, nil
}

type fakeCartRepo struct{ items map[string]*entity.CartItem }

func (f *fakeCartRepo) Create(item *entity.CartItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}
func (f *fakeCartRepo) Update(item *entity.CartItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}
func (f *fakeCartRepo) Delete(id string) error { delete(f.items, id); return nil }
func (f *fakeCartRepo) GetByUserAndProduct(userID, productID string) (*entity.CartItem, error) {
	for _, item := range f.items {
		if item.UserID == userID && userID != "" && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeCartRepo) GetBySessionAndProduct(sessionKey, productID string) (*entity.CartItem, error) {
	for _, item := range f.items {
		if item.SessionKey == sessionKey && sessionKey != "" && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeCartRepo) ListByUser(userID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, item := range f.items {
		if item.UserID == userID && userID != "" {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeCartRepo) ListBySession(sessionKey string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, item := range f.items {
		if item.SessionKey == sessionKey && sessionKey != "" {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeCartRepo) DeleteByUser(userID string) error {
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
		}
	}
	return nil
}
func (f *fakeCartRepo) DeleteBySession(sessionKey string) error {
	for id, item := range f.items {
		if item.SessionKey == sessionKey {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeSubscriptionRepo struct{ subs map[string]*entity.Subscription }

func (f *fakeSubscriptionRepo) GetByCompany(companyID string) (*entity.Subscription, error) {
	return f.subs[companyID], nil
}
func (f *fakeSubscriptionRepo) Upsert(s *entity.Subscription) error {
	f.subs[s.CompanyID] = s
	return nil
}

// fakeTxRunner imita el Rollback restaurando el estado previo si fn falla.
type fakeTxRunner struct {
	orderRepo *fakeOrderRepo
	stockRepo *fakeStockRepo
	cartRepo  *fakeCartRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.StockRepository, repository.CartRepository) error) error {
	ordersBackup := map[string]*entity.Order{}
	for k, v := range f.orderRepo.orders {
		ordersBackup[k] = v
	}
	itemsBackup := append([]*entity.OrderItem(nil), f.orderRepo.items...)
	stockBackup := map[string]*entity.Stock{}
	for k, v := range f.stockRepo.rows {
		cp := *v
		stockBackup[k] = &cp
	}
	cartBackup := map[string]*entity.CartItem{}
	for k, v := range f.cartRepo.items {
		cp := *v
		cartBackup[k] = &cp
	}
	if err := fn(f.orderRepo, f.stockRepo, f.cartRepo); err != nil {
		f.orderRepo.orders = ordersBackup
		f.orderRepo.items = itemsBackup
		f.stockRepo.rows = stockBackup
		f.cartRepo.items = cartBackup
		return err
	}
	return nil
}

type fixture struct {
	orders   *storefront.OrderUseCase
	cart     *storefront.CartUseCase
	products *fakeProductRepo
	branches *fakeBranchRepo
	orderRep *fakeOrderRepo
	stock    *fakeStockRepo
	cartRep  *fakeCartRepo
	subs     *fakeSubscriptionRepo
}

func newFixture() *fixture {
	products := &fakeProductRepo{items: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: "c1", Name: "Teclado", Price: decimal.NewFromInt(1000)},
		"p2": {ID: "p2", CompanyID: "c1", Name: "Mouse", Price: decimal.NewFromInt(300)},
	}}
	branches := &fakeBranchRepo{items: map[string]*entity.Branch{
		"b1": {ID: "b1", CompanyID: "c1"},
		"b2": {ID: "b2", CompanyID: "c1"},
	}}
	orderRep := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	stock := &fakeStockRepo{rows: map[string]*entity.Stock{}}
	stock.set("b1", "p1", 10)
	stock.set("b2", "p1", 10)
	stock.set("b2", "p2", 10)
	cartRep := &fakeCartRepo{items: map[string]*entity.CartItem{}}
	subs := &fakeSubscriptionRepo{subs: map[string]*entity.Subscription{}}
	runner := &fakeTxRunner{orderRepo: orderRep, stockRepo: stock, cartRepo: cartRep}
	resolver := entitlement.NewResolver(subs)
	return &fixture{
		orders:   storefront.NewOrderUseCase(runner, products, orderRep, branches, resolver),
		cart:     storefront.NewCartUseCase(runner, cartRep, products),
		products: products,
		branches: branches,
		orderRep: orderRep,
		stock:    stock,
		cartRep:  cartRep,
		subs:     subs,
	}
}

func (fx *fixture) grantPremium(companyID string) {
	now := time.Now()
	fx.subs.subs[companyID] = &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Plan:      entity.PlanPremium,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 1, 0),
		Active:    true,
	}
}

func validOrder() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:  "Ana Rojas",
		CustomerEmail: "ana@example.com",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 3},
		},
	}
}

// Una orden pública nace pending, sin sucursal, con precio de catálogo, y
// descuenta stock de una sola sucursal (la de menor id con saldo).
func TestCreateOrder_FulfillmentAgrupado(t *testing.T) {
	fx := newFixture()

	resp, err := fx.orders.Create(context.Background(), validOrder())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Empty(t, resp.BranchID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(3000)))

	s1, _ := fx.stock.Get("b1", "p1")
	s2, _ := fx.stock.Get("b2", "p1")
	assert.EqualValues(t, 7, s1.Quantity)
	assert.EqualValues(t, 10, s2.Quantity)
}

// Sin ninguna sucursal con saldo suficiente para una línea, la orden entera
// se rechaza y nada queda persistido.
func TestCreateOrder_SinSaldoRechazaTodo(t *testing.T) {
	fx := newFixture()
	in := validOrder()
	in.Items = append(in.Items, dto.OrderItemRequest{ProductID: "p2", Quantity: 99})

	_, err := fx.orders.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	s1, _ := fx.stock.Get("b1", "p1")
	assert.EqualValues(t, 10, s1.Quantity)
	assert.Empty(t, fx.orderRep.orders)
}

// El listado de órdenes requiere plan premium vigente.
func TestListOrders_RequierePremium(t *testing.T) {
	fx := newFixture()
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := fx.orders.List(admin, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden) // plan básico por defecto

	fx.grantPremium("c1")
	_, err = fx.orders.List(admin, "", dto.PageRequest{})
	require.NoError(t, err)
}

// Un premium vencido degrada: la gestión de órdenes vuelve a estar cerrada.
func TestListOrders_PremiumVencidoDegrada(t *testing.T) {
	fx := newFixture()
	fx.grantPremium("c1")
	fx.subs.subs["c1"].EndDate = time.Now().AddDate(0, 0, -2)
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := fx.orders.List(admin, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_TransicionYAsignacionDeSucursal(t *testing.T) {
	fx := newFixture()
	fx.grantPremium("c1")
	created, err := fx.orders.Create(context.Background(), validOrder())
	require.NoError(t, err)

	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}
	resp, err := fx.orders.UpdateStatus(admin, created.ID, dto.UpdateOrderStatusRequest{
		Status:   entity.OrderStatusProcessing,
		BranchID: "b1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, resp.Status)
	assert.Equal(t, "b1", resp.BranchID)

	_, err = fx.orders.UpdateStatus(admin, created.ID, dto.UpdateOrderStatusRequest{Status: "returned"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- Carrito ---

func TestCartAdd_AcumulaPorProducto(t *testing.T) {
	fx := newFixture()
	key := storefront.CartKey{SessionKey: "sess-1"}

	_, err := fx.cart.Add(key, dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	resp, err := fx.cart.Add(key, dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.EqualValues(t, 5, resp.Items[0].Quantity)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(5000)))
}

func TestCartKey_ExactamenteUnDueno(t *testing.T) {
	fx := newFixture()

	_, err := fx.cart.Add(storefront.CartKey{}, dto.AddCartItemRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.cart.Add(storefront.CartKey{UserID: "u1", SessionKey: "s1"}, dto.AddCartItemRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Merge al login: línea coincidente suma y descarta la anónima; línea no
// coincidente pasa a ser del usuario.
func TestCartMerge_AbsorbeYReasigna(t *testing.T) {
	fx := newFixture()
	anon := storefront.CartKey{SessionKey: "sess-1"}
	user := storefront.CartKey{UserID: "u1"}

	_, err := fx.cart.Add(anon, dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	_, err = fx.cart.Add(anon, dto.AddCartItemRequest{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	_, err = fx.cart.Add(user, dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, fx.cart.Merge("sess-1", "u1"))

	merged, err := fx.cart.Get(user)
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)
	byProduct := map[string]int64{}
	for _, item := range merged.Items {
		byProduct[item.ProductID] = item.Quantity
	}
	assert.EqualValues(t, 5, byProduct["p1"]) // 3 + 2
	assert.EqualValues(t, 1, byProduct["p2"])

	leftovers, err := fx.cart.Get(anon)
	require.NoError(t, err)
	assert.Empty(t, leftovers.Items)
}

// El checkout crea la orden, descuenta stock y vacía el carrito en una
// misma transacción.
func TestCartCheckout_CreaOrdenYVaciaCarrito(t *testing.T) {
	fx := newFixture()
	key := storefront.CartKey{UserID: "u1"}
	_, err := fx.cart.Add(key, dto.AddCartItemRequest{ProductID: "p1", Quantity: 4})
	require.NoError(t, err)

	order, err := fx.cart.Checkout(context.Background(), key, dto.CheckoutRequest{
		CustomerName:  "Ana Rojas",
		CustomerEmail: "ana@example.com",
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(4000)))

	cart, err := fx.cart.Get(key)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	s1, _ := fx.stock.Get("b1", "p1")
	assert.EqualValues(t, 6, s1.Quantity)
}

// Si el stock no alcanza en el checkout, carrito y stock quedan intactos.
func TestCartCheckout_SinSaldoConservaCarrito(t *testing.T) {
	fx := newFixture()
	key := storefront.CartKey{UserID: "u1"}
	_, err := fx.cart.Add(key, dto.AddCartItemRequest{ProductID: "p1", Quantity: 11})
	require.NoError(t, err)

	_, err = fx.cart.Checkout(context.Background(), key, dto.CheckoutRequest{
		CustomerName:  "Ana Rojas",
		CustomerEmail: "ana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	cart, err := fx.cart.Get(key)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Empty(t, fx.orderRep.orders)
}

func TestCartCheckout_CarritoVacio(t *testing.T) {
	fx := newFixture()
	_, err := fx.cart.Checkout(context.Background(), storefront.CartKey{UserID: "u1"}, dto.CheckoutRequest{
		CustomerName:  "Ana Rojas",
		CustomerEmail: "ana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

// fakeStockRepo almacén en memoria con un hook afterGet para simular
// escrituras concurrentes entre la lectura y la escritura del caso de uso.
type fakeStockRepo struct {
	rows            map[string]*entity.Stock
	afterGet        func()
	lastListCompany string
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.Stock{}}
}

func stockKey(branchID, productID string) string { return branchID + "|" + productID }

func (f *fakeStockRepo) set(branchID, productID string, qty int64) {
	f.rows[stockKey(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: qty}
}

func (f *fakeStockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	var cp entity.Stock
	if s, ok := f.rows[stockKey(branchID, productID)]; ok {
		cp = *s
	} else {
		cp = entity.Stock{BranchID: branchID, ProductID: productID}
	}
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	return f.Get(branchID, productID)
}

func (f *fakeStockRepo) GetAnyForUpdate(string, int64) (*entity.Stock, error) { return nil, nil }

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

func (f *fakeStockRepo) ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Stock, error) {
	f.lastListCompany = companyID
	var out []*entity.Stock
	for _, s := range f.rows {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func newInventoryFixture() (*usecase.InventoryUseCase, *fakeStockRepo) {
	branches := &fakeBranchRepo{items: map[string]*entity.Branch{
		"b1": {ID: "b1", CompanyID: "c1", Name: "Casa Matriz"},
	}}
	stocks := newFakeStockRepo()
	return usecase.NewInventoryUseCase(stocks, branches), stocks
}

// ─────────────────────────────────────────────────────────────────────────────
// Punto de reorden
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateReorderPoint_AjustaSoloElUmbral(t *testing.T) {
	uc, stocks := newInventoryFixture()
	stocks.set("b1", "p1", 40)
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	out, err := uc.UpdateReorderPoint(admin, dto.UpdateReorderPointRequest{
		BranchID: "b1", ProductID: "p1", ReorderPoint: 7,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, out.ReorderPoint)
	assert.EqualValues(t, 40, out.Quantity)
}

// Un descuento de venta que confirma mientras se ajusta el umbral no puede
// quedar deshecho: el ajuste nunca reescribe la cantidad leída.
func TestUpdateReorderPoint_NoPisaDescuentoConcurrente(t *testing.T) {
	uc, stocks := newInventoryFixture()
	stocks.set("b1", "p1", 10)
	stocks.afterGet = func() {
		stocks.rows[stockKey("b1", "p1")].Quantity = 2 // venta concurrente: 10 → 2
	}
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := uc.UpdateReorderPoint(admin, dto.UpdateReorderPointRequest{
		BranchID: "b1", ProductID: "p1", ReorderPoint: 5,
	})
	require.NoError(t, err)

	row := stocks.rows[stockKey("b1", "p1")]
	assert.EqualValues(t, 2, row.Quantity, "la cantidad descontada por la venta debe sobrevivir al ajuste")
	assert.EqualValues(t, 5, row.ReorderPoint)
}

func TestUpdateReorderPoint_CreaFilaEnCero(t *testing.T) {
	uc, _ := newInventoryFixture()
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	out, err := uc.UpdateReorderPoint(admin, dto.UpdateReorderPointRequest{
		BranchID: "b1", ProductID: "p9", ReorderPoint: 3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.Quantity)
	assert.EqualValues(t, 3, out.ReorderPoint)
}

func TestUpdateReorderPoint_VendedorProhibido(t *testing.T) {
	uc, _ := newInventoryFixture()
	seller := access.Actor{ID: "u2", Role: entity.RoleSeller, CompanyID: "c1"}

	_, err := uc.UpdateReorderPoint(seller, dto.UpdateReorderPointRequest{
		BranchID: "b1", ProductID: "p1", ReorderPoint: 5,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────────────────────────────────────
// Lectura pública
// ─────────────────────────────────────────────────────────────────────────────

func TestList_VisitanteConSucursal(t *testing.T) {
	uc, stocks := newInventoryFixture()
	stocks.set("b1", "p1", 12)

	resp, err := uc.List(access.Actor{}, "b1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "c1", stocks.lastListCompany, "la sucursal resuelve la compañía consultada")
}

func TestList_VisitanteSinSucursal(t *testing.T) {
	uc, _ := newInventoryFixture()

	_, err := uc.List(access.Actor{}, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_VisitanteSucursalInexistente(t *testing.T) {
	uc, _ := newInventoryFixture()

	_, err := uc.List(access.Actor{}, "b9", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

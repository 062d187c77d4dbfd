package inventory_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/inventory"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

// fakeStockRepo repositorio de stock en memoria. El bloqueo de fila real lo
// aporta PostgreSQL; aquí solo se verifica la aritmética y la selección.
type fakeStockRepo struct {
	rows map[string]*entity.Stock // key: branchID + "|" + productID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.Stock{}}
}

func (f *fakeStockRepo) key(branchID, productID string) string { return branchID + "|" + productID }

func (f *fakeStockRepo) set(branchID, productID string, qty int64) {
	f.rows[f.key(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: qty}
}

func (f *fakeStockRepo) Get(branchID, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[f.key(branchID, productID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{BranchID: branchID, ProductID: productID}, nil
}

func (f *fakeStockRepo) GetForUpdate(branchID, productID string) (*entity.Stock, error) {
	return f.Get(branchID, productID)
}

func (f *fakeStockRepo) GetAnyForUpdate(productID string, minQty int64) (*entity.Stock, error) {
	// Mismo criterio que el SQL: menor branch_id con Quantity >= minQty.
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
	if s, ok := f.rows[f.key(branchID, productID)]; ok {
		s.Quantity += qty
		return nil
	}
	f.rows[f.key(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, Quantity: qty}
	return nil
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.rows[f.key(stock.BranchID, stock.ProductID)] = &cp
	return nil
}

func (f *fakeStockRepo) UpdateReorderPoint(branchID, productID string, reorderPoint int64) error {
	if s, ok := f.rows[f.key(branchID, productID)]; ok {
		s.ReorderPoint = reorderPoint
		return nil
	}
	f.rows[f.key(branchID, productID)] = &entity.Stock{BranchID: branchID, ProductID: productID, ReorderPoint: reorderPoint}
	return nil
}

func (f *fakeStockRepo) ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

func mustQty(t *testing.T, repo *fakeStockRepo, branchID, productID string) int64 {
	t.Helper()
	s, err := repo.Get(branchID, productID)
	require.NoError(t, err)
	return s.Quantity
}

// Increase crea la fila en cero si no existe y suma la cantidad.
func TestIncrease_CreaFilaSiNoExiste(t *testing.T) {
	repo := newFakeStockRepo()

	require.NoError(t, inventory.Increase(repo, "b1", "p1", 100))
	assert.EqualValues(t, 100, mustQty(t, repo, "b1", "p1"))

	require.NoError(t, inventory.Increase(repo, "b1", "p1", 50))
	assert.EqualValues(t, 150, mustQty(t, repo, "b1", "p1"))
}

func TestIncrease_CantidadInvalida(t *testing.T) {
	repo := newFakeStockRepo()
	assert.ErrorIs(t, inventory.Increase(repo, "b1", "p1", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.Increase(repo, "b1", "p1", -5), domain.ErrInvalidInput)
}

func TestDecreaseExact_DescuentaConSaldo(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", 100)

	require.NoError(t, inventory.DecreaseExact(repo, "b1", "p1", 30))
	assert.EqualValues(t, 70, mustQty(t, repo, "b1", "p1"))
}

// Saldo insuficiente: error y stock intacto (sin descuento parcial).
func TestDecreaseExact_SaldoInsuficienteNoMuta(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", 10)

	err := inventory.DecreaseExact(repo, "b1", "p1", 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 10, mustQty(t, repo, "b1", "p1"))
}

// Una fila ausente cuenta como stock cero en el descuento exacto.
func TestDecreaseExact_FilaAusenteEsCero(t *testing.T) {
	repo := newFakeStockRepo()
	err := inventory.DecreaseExact(repo, "b1", "p1", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// El stock de otra sucursal no satisface un descuento exacto.
func TestDecreaseExact_NoTomaDeOtraSucursal(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b2", "p1", 100)

	err := inventory.DecreaseExact(repo, "b1", "p1", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 100, mustQty(t, repo, "b2", "p1"))
}

// El descuento agrupado elige una sola sucursal de forma determinista
// (menor branch_id) y nunca divide la línea entre sucursales.
func TestDecreasePooled_EleccionDeterminista(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b2", "p1", 50)
	repo.set("b1", "p1", 50)

	branchID, err := inventory.DecreasePooled(repo, "p1", 20)
	require.NoError(t, err)
	assert.Equal(t, "b1", branchID)
	assert.EqualValues(t, 30, mustQty(t, repo, "b1", "p1"))
	assert.EqualValues(t, 50, mustQty(t, repo, "b2", "p1"))
}

// Si la primera sucursal no alcanza pero otra sí, se usa esa otra completa.
func TestDecreasePooled_SaltaSucursalesSinSaldo(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", 5)
	repo.set("b2", "p1", 40)

	branchID, err := inventory.DecreasePooled(repo, "p1", 20)
	require.NoError(t, err)
	assert.Equal(t, "b2", branchID)
	assert.EqualValues(t, 5, mustQty(t, repo, "b1", "p1"))
	assert.EqualValues(t, 20, mustQty(t, repo, "b2", "p1"))
}

// Aunque la suma entre sucursales alcance, ninguna fila individual basta:
// stock insuficiente, nada cambia.
func TestDecreasePooled_NoDivideEntreSucursales(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", 10)
	repo.set("b2", "p1", 10)

	_, err := inventory.DecreasePooled(repo, "p1", 15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 10, mustQty(t, repo, "b1", "p1"))
	assert.EqualValues(t, 10, mustQty(t, repo, "b2", "p1"))
}

// El error de stock insuficiente identifica al producto ofensor, tanto en
// el descuento exacto como en el agrupado.
func TestDecrease_ErrorIdentificaProducto(t *testing.T) {
	repo := newFakeStockRepo()
	repo.set("b1", "p1", 1)

	err := inventory.DecreaseExact(repo, "b1", "p1", 5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "p1")

	_, err = inventory.DecreasePooled(repo, "p2", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "p2")
}

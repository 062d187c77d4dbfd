package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

type fakeBranchRepo struct{ items map[string]*entity.Branch }

func (f *fakeBranchRepo) Create(b *entity.Branch) error             { f.items[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.items[id], nil }
func (f *fakeBranchRepo) Update(b *entity.Branch) error             { f.items[b.ID] = b; return nil }
func (f *fakeBranchRepo) Delete(id string) error                    { delete(f.items, id); return nil }
func (f *fakeBranchRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range f.items {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBranchRepo) ListAll(int, int) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range f.items {
		out = append(out, b)
	}
	return out, nil
}
func (f *fakeBranchRepo) CountByCompany(companyID string) (int, error) {
	n := 0
	for _, b := range f.items {
		if b.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeSubscriptionRepo struct{ subs map[string]*entity.Subscription }

func (f *fakeSubscriptionRepo) GetByCompany(companyID string) (*entity.Subscription, error) {
	return f.subs[companyID], nil
}
func (f *fakeSubscriptionRepo) Upsert(s *entity.Subscription) error {
	f.subs[s.CompanyID] = s
	return nil
}

func newBranchFixture() (*usecase.BranchUseCase, *fakeBranchRepo, *fakeSubscriptionRepo) {
	branches := &fakeBranchRepo{items: map[string]*entity.Branch{}}
	subs := &fakeSubscriptionRepo{subs: map[string]*entity.Subscription{}}
	return usecase.NewBranchUseCase(branches, entitlement.NewResolver(subs)), branches, subs
}

func standardSub(companyID string) *entity.Subscription {
	now := time.Now()
	return &entity.Subscription{
		ID: "sub-" + companyID, CompanyID: companyID,
		Plan: entity.PlanStandard, Active: true,
		StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 1, 0),
		MaxBranches: entity.PlanStandard.MaxBranches(),
	}
}

// Sin suscripción rige el plan básico: una sola sucursal.
func TestBranchCreate_PlanBasicoUnaSucursal(t *testing.T) {
	uc, _, _ := newBranchFixture()
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := uc.Create(admin, dto.CreateBranchRequest{Name: "Casa Matriz"})
	require.NoError(t, err)

	_, err = uc.Create(admin, dto.CreateBranchRequest{Name: "Sucursal 2"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

// Plan estándar: tres sucursales, la cuarta excede la cuota.
func TestBranchCreate_PlanEstandarTresSucursales(t *testing.T) {
	uc, _, subs := newBranchFixture()
	subs.subs["c1"] = standardSub("c1")
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	for i := 0; i < 3; i++ {
		_, err := uc.Create(admin, dto.CreateBranchRequest{Name: "Sucursal"})
		require.NoError(t, err)
	}
	_, err := uc.Create(admin, dto.CreateBranchRequest{Name: "Cuarta"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

// La cuota es intrínseca al tenant: también bloquea al super_admin.
func TestBranchCreate_CuotaAplicaASuperAdmin(t *testing.T) {
	uc, _, subs := newBranchFixture()
	subs.subs["c1"] = standardSub("c1")
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}
	root := access.Actor{ID: "u0", Role: entity.RoleSuperAdmin}

	for i := 0; i < 3; i++ {
		_, err := uc.Create(admin, dto.CreateBranchRequest{Name: "Sucursal"})
		require.NoError(t, err)
	}
	_, err := uc.Create(root, dto.CreateBranchRequest{CompanyID: "c1", Name: "Cuarta"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

// Una suscripción vencida degrada la cuota a la del plan básico.
func TestBranchCreate_SuscripcionVencidaDegrada(t *testing.T) {
	uc, branches, subs := newBranchFixture()
	sub := standardSub("c1")
	sub.EndDate = time.Now().AddDate(0, 0, -3)
	subs.subs["c1"] = sub
	branches.items["b1"] = &entity.Branch{ID: "b1", CompanyID: "c1"}
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := uc.Create(admin, dto.CreateBranchRequest{Name: "Segunda"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

// Un vendedor no crea sucursales.
func TestBranchCreate_VendedorProhibido(t *testing.T) {
	uc, _, _ := newBranchFixture()
	seller := access.Actor{ID: "u2", Role: entity.RoleSeller, CompanyID: "c1", BranchID: "b1"}

	_, err := uc.Create(seller, dto.CreateBranchRequest{Name: "Sucursal"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBranchList_AcotadoASucursalAsignada(t *testing.T) {
	uc, branches, subs := newBranchFixture()
	subs.subs["c1"] = standardSub("c1")
	branches.items["b1"] = &entity.Branch{ID: "b1", CompanyID: "c1", Name: "Matriz"}
	branches.items["b2"] = &entity.Branch{ID: "b2", CompanyID: "c1", Name: "Norte"}

	manager := access.Actor{ID: "u3", Role: entity.RoleManager, CompanyID: "c1", BranchID: "b2"}
	resp, err := uc.List(manager, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "b2", resp.Items[0].ID)
}

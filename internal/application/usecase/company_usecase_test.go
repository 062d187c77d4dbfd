package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

type fakeCompanyRepo struct{ items map[string]*entity.Company }

func (f *fakeCompanyRepo) Create(c *entity.Company) error             { f.items[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return f.items[id], nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error             { f.items[c.ID] = c; return nil }
func (f *fakeCompanyRepo) Delete(id string) error                     { delete(f.items, id); return nil }
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func newCompanyFixture() (*usecase.CompanyUseCase, *fakeCompanyRepo, *fakeSubscriptionRepo) {
	companies := &fakeCompanyRepo{items: map[string]*entity.Company{}}
	subs := &fakeSubscriptionRepo{subs: map[string]*entity.Subscription{}}
	return usecase.NewCompanyUseCase(companies, subs), companies, subs
}

func rootActor() access.Actor { return access.Actor{ID: "u0", Role: entity.RoleSuperAdmin} }

func TestCompanyCreate_SoloSuperAdmin(t *testing.T) {
	uc, _, _ := newCompanyFixture()

	_, err := uc.Create(rootActor(), dto.CreateCompanyRequest{Name: "Comercial Andes", TaxID: "76.111.222-3"})
	require.NoError(t, err)

	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}
	_, err = uc.Create(admin, dto.CreateCompanyRequest{Name: "Otra", TaxID: "1-9"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// La cuota de sucursales de la suscripción se deriva del plan, nunca del request.
func TestSubscribe_CuotaDerivadaDelPlan(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	companies.items["c1"] = &entity.Company{ID: "c1", Name: "Comercial Andes"}

	resp, err := uc.Subscribe(rootActor(), "c1", dto.SubscribeRequest{
		Plan:      "standard",
		StartDate: time.Now().Format("2006-01-02"),
		EndDate:   time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxBranches)
	assert.True(t, resp.InForce)
}

func TestSubscribe_FechasInvertidas(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	companies.items["c1"] = &entity.Company{ID: "c1"}

	_, err := uc.Subscribe(rootActor(), "c1", dto.SubscribeRequest{
		Plan:      "premium",
		StartDate: "2026-06-01",
		EndDate:   "2026-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubscribe_TenantAdminProhibido(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	companies.items["c1"] = &entity.Company{ID: "c1"}
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	_, err := uc.Subscribe(admin, "c1", dto.SubscribeRequest{
		Plan:      "premium",
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Una compañía sin suscripción reporta el plan básico por defecto.
func TestGetSubscription_DefaultBasico(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	companies.items["c1"] = &entity.Company{ID: "c1"}
	admin := access.Actor{ID: "u1", Role: entity.RoleTenantAdmin, CompanyID: "c1"}

	resp, err := uc.GetSubscription(admin, "c1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.PlanBasic), resp.Plan)
	assert.Equal(t, 1, resp.MaxBranches)
	assert.True(t, resp.InForce)
}

// Un tenant no consulta la suscripción de otro.
func TestGetSubscription_OtroTenantProhibido(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	companies.items["c1"] = &entity.Company{ID: "c1"}
	ajeno := access.Actor{ID: "u9", Role: entity.RoleTenantAdmin, CompanyID: "c2"}

	_, err := uc.GetSubscription(ajeno, "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

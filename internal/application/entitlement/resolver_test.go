package entitlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
)

// fakeSubscriptionRepo repositorio en memoria para los tests del resolver.
type fakeSubscriptionRepo struct {
	byCompany map[string]*entity.Subscription
}

func (f *fakeSubscriptionRepo) GetByCompany(companyID string) (*entity.Subscription, error) {
	return f.byCompany[companyID], nil
}

func (f *fakeSubscriptionRepo) Upsert(sub *entity.Subscription) error {
	f.byCompany[sub.CompanyID] = sub
	return nil
}

// Compañía sin suscripción: plan básico activo con una sucursal.
func TestResolve_SinSuscripcionDefaultBasico(t *testing.T) {
	r := entitlement.NewResolver(&fakeSubscriptionRepo{byCompany: map[string]*entity.Subscription{}})

	ent, err := r.Resolve("c1")
	require.NoError(t, err)

	assert.Equal(t, entity.PlanBasic, ent.Plan)
	assert.Equal(t, 1, ent.MaxBranches)
	assert.True(t, ent.InForce(time.Now()))
	assert.False(t, ent.AllowsReports(time.Now()))
	assert.False(t, ent.AllowsStorefrontOrders(time.Now()))
}

func TestResolve_CuotaDerivadaDelPlan(t *testing.T) {
	repo := &fakeSubscriptionRepo{byCompany: map[string]*entity.Subscription{
		"c1": {CompanyID: "c1", Plan: entity.PlanStandard, Active: true, EndDate: time.Now().AddDate(1, 0, 0)},
		"c2": {CompanyID: "c2", Plan: entity.PlanPremium, Active: true, EndDate: time.Now().AddDate(1, 0, 0)},
	}}
	r := entitlement.NewResolver(repo)

	ent1, err := r.Resolve("c1")
	require.NoError(t, err)
	assert.Equal(t, 3, ent1.MaxBranches)
	assert.True(t, ent1.AllowsReports(time.Now()))
	assert.False(t, ent1.AllowsStorefrontOrders(time.Now()))

	ent2, err := r.Resolve("c2")
	require.NoError(t, err)
	assert.Equal(t, 9999, ent2.MaxBranches)
	assert.True(t, ent2.AllowsStorefrontOrders(time.Now()))
}

// Una suscripción premium vencida o inactiva degrada los checks de plan a
// comportamiento básico: el tier solo vale si está vigente.
func TestResolve_VencidaOInactivaDegrada(t *testing.T) {
	now := time.Now()
	repo := &fakeSubscriptionRepo{byCompany: map[string]*entity.Subscription{
		"vencida":  {CompanyID: "vencida", Plan: entity.PlanPremium, Active: true, EndDate: now.AddDate(0, 0, -1)},
		"inactiva": {CompanyID: "inactiva", Plan: entity.PlanPremium, Active: false, EndDate: now.AddDate(1, 0, 0)},
	}}
	r := entitlement.NewResolver(repo)

	vencida, err := r.Resolve("vencida")
	require.NoError(t, err)
	assert.False(t, vencida.InForce(now))
	assert.False(t, vencida.AllowsReports(now))
	assert.False(t, vencida.AllowsStorefrontOrders(now))

	inactiva, err := r.Resolve("inactiva")
	require.NoError(t, err)
	assert.False(t, inactiva.AllowsStorefrontOrders(now))
}

// La vigencia incluye el día de término (hoy <= valid_until).
func TestInForce_IncluyeDiaDeTermino(t *testing.T) {
	today := time.Now().Truncate(24 * time.Hour)
	repo := &fakeSubscriptionRepo{byCompany: map[string]*entity.Subscription{
		"c1": {CompanyID: "c1", Plan: entity.PlanPremium, Active: true, EndDate: today},
	}}
	r := entitlement.NewResolver(repo)

	ent, err := r.Resolve("c1")
	require.NoError(t, err)
	assert.True(t, ent.InForce(time.Now()))
}

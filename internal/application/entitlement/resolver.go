// Package entitlement resuelve el plan vigente de una compañía y las
// capacidades que otorga (cuota de sucursales, reportes, gestión de órdenes
// de la tienda). Se consulta en cada operación gated por plan.
package entitlement

import (
	"time"

	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// Entitlement es el resultado de resolver la suscripción de una compañía.
type Entitlement struct {
	Plan        entity.Plan
	Active      bool
	ValidUntil  time.Time
	MaxBranches int
	hasWindow   bool // false cuando no hay suscripción (default básico sin vencimiento)
}

// InForce indica si la suscripción está vigente: activa y dentro de su
// ventana de validez. El default básico (sin registro) siempre está vigente.
func (e Entitlement) InForce(now time.Time) bool {
	if !e.Active {
		return false
	}
	if !e.hasWindow {
		return true
	}
	return !now.Truncate(24 * time.Hour).After(e.ValidUntil)
}

// AllowsReports indica si el plan habilita reportes (estándar o superior,
// y vigente: un premium vencido degrada a comportamiento básico).
func (e Entitlement) AllowsReports(now time.Time) bool {
	return e.Plan.AtLeast(entity.PlanStandard) && e.InForce(now)
}

// AllowsStorefrontOrders indica si el plan habilita el listado y la gestión
// de órdenes de la tienda pública (solo premium vigente).
func (e Entitlement) AllowsStorefrontOrders(now time.Time) bool {
	return e.Plan == entity.PlanPremium && e.InForce(now)
}

// Resolver resuelve entitlements desde la suscripción persistida.
type Resolver struct {
	subs repository.SubscriptionRepository
}

// NewResolver construye el resolver.
func NewResolver(subs repository.SubscriptionRepository) *Resolver {
	return &Resolver{subs: subs}
}

// Resolve devuelve el entitlement de la compañía. Una compañía sin
// suscripción opera con el plan básico activo (una sucursal).
func (r *Resolver) Resolve(companyID string) (Entitlement, error) {
	sub, err := r.subs.GetByCompany(companyID)
	if err != nil {
		return Entitlement{}, err
	}
	if sub == nil {
		return Entitlement{
			Plan:        entity.PlanBasic,
			Active:      true,
			MaxBranches: entity.PlanBasic.MaxBranches(),
		}, nil
	}
	return Entitlement{
		Plan:        sub.Plan,
		Active:      sub.Active,
		ValidUntil:  sub.EndDate,
		MaxBranches: sub.Plan.MaxBranches(),
		hasWindow:   true,
	}, nil
}

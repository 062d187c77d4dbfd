package entity

import "time"

// Plan es el nivel de suscripción de una compañía.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Valid indica si el plan es uno de los valores conocidos.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// MaxBranches devuelve la cuota de sucursales que otorga el plan.
// La cuota se deriva siempre del plan; nunca se fija de forma independiente.
func (p Plan) MaxBranches() int {
	switch p {
	case PlanStandard:
		return 3
	case PlanPremium:
		return 9999 // prácticamente ilimitado
	default:
		return 1
	}
}

// AtLeast indica si el plan es igual o superior al dado (basic < standard < premium).
func (p Plan) AtLeast(other Plan) bool {
	return planRank(p) >= planRank(other)
}

func planRank(p Plan) int {
	switch p {
	case PlanPremium:
		return 2
	case PlanStandard:
		return 1
	default:
		return 0
	}
}

// Subscription es la suscripción 1:1 de una compañía. MaxBranches se
// recalcula desde Plan en cada guardado.
type Subscription struct {
	ID          string
	CompanyID   string
	Plan        Plan
	StartDate   time.Time
	EndDate     time.Time
	Active      bool
	MaxBranches int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InForce indica si la suscripción está vigente en el instante dado:
// activa y dentro de la ventana de validez.
func (s *Subscription) InForce(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.Active && !now.Truncate(24*time.Hour).After(s.EndDate)
}

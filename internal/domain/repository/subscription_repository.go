package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// SubscriptionRepository puerto de persistencia para suscripciones (1:1 con compañía).
type SubscriptionRepository interface {
	// GetByCompany devuelve la suscripción de la compañía o nil si no existe.
	GetByCompany(companyID string) (*entity.Subscription, error)
	// Upsert crea o reemplaza la suscripción de la compañía.
	Upsert(sub *entity.Subscription) error
}

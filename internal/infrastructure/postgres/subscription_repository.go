package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre
// PostgreSQL. Una fila por compañía (company_id único).
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository construye el adaptador de suscripciones.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// GetByCompany devuelve la suscripción de la compañía o nil si no existe.
func (r *SubscriptionRepo) GetByCompany(companyID string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, plan, start_date, end_date, active, max_branches, created_at, updated_at
		FROM subscriptions WHERE company_id = $1`
	var s entity.Subscription
	err := r.pool.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Plan, &s.StartDate, &s.EndDate, &s.Active,
		&s.MaxBranches, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la suscripción de la compañía.
func (r *SubscriptionRepo) Upsert(sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan, start_date, end_date, active, max_branches, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id)
		DO UPDATE SET plan = EXCLUDED.plan, start_date = EXCLUDED.start_date,
		              end_date = EXCLUDED.end_date, active = EXCLUDED.active,
		              max_branches = EXCLUDED.max_branches, updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		sub.ID, sub.CompanyID, sub.Plan, sub.StartDate, sub.EndDate,
		sub.Active, sub.MaxBranches, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

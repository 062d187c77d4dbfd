package dto

import "time"

// CreateCompanyRequest alta de compañía (solo super_admin).
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateCompanyRequest campos opcionales a modificar.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse representación de una compañía.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de compañías.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SubscribeRequest activación/actualización de la suscripción de una
// compañía (solo super_admin). La cuota de sucursales NO es un campo: se
// deriva siempre del plan.
type SubscribeRequest struct {
	Plan      string `json:"plan" validate:"required,oneof=basic standard premium"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Active    *bool  `json:"active"`
}

// SubscriptionResponse representación de la suscripción vigente.
type SubscriptionResponse struct {
	CompanyID   string `json:"company_id"`
	Plan        string `json:"plan"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      bool   `json:"active"`
	MaxBranches int    `json:"max_branches"`
	InForce     bool   `json:"in_force"`
}

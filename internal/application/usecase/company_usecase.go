package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// CompanyUseCase casos de uso CRUD para compañías y la activación de su
// suscripción. Alta, baja y suscripción son exclusivas del super_admin.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	subRepo     repository.SubscriptionRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, subRepo repository.SubscriptionRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, subRepo: subRepo}
}

// Create crea una compañía (solo super_admin).
func (uc *CompanyUseCase) Create(actor access.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una compañía; cada tenant solo ve la propia.
func (uc *CompanyUseCase) GetByID(actor access.Actor, id string) (*dto.CompanyResponse, error) {
	if !access.SameCompany(actor, id) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update actualiza datos de contacto de la compañía (super_admin o
// tenant_admin de la propia compañía).
func (uc *CompanyUseCase) Update(actor access.Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if actor.Role != entity.RoleSuperAdmin &&
		!(actor.Role == entity.RoleTenantAdmin && access.SameCompany(actor, id)) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista compañías (solo super_admin ve el directorio completo).
func (uc *CompanyUseCase) List(actor access.Actor, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una compañía (solo super_admin).
func (uc *CompanyUseCase) Delete(actor access.Actor, id string) error {
	if actor.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	return uc.companyRepo.Delete(id)
}

// Subscribe activa o reemplaza la suscripción de la compañía (solo
// super_admin). La cuota de sucursales se deriva SIEMPRE del plan.
func (uc *CompanyUseCase) Subscribe(actor access.Actor, companyID string, in dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	plan := entity.Plan(in.Plan)
	if !plan.Valid() {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	sub := &entity.Subscription{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Plan:        plan,
		StartDate:   start,
		EndDate:     end,
		Active:      active,
		MaxBranches: plan.MaxBranches(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.subRepo.Upsert(sub); err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub), nil
}

// GetSubscription devuelve la suscripción de la compañía; sin registro se
// reporta el plan básico por defecto.
func (uc *CompanyUseCase) GetSubscription(actor access.Actor, companyID string) (*dto.SubscriptionResponse, error) {
	if !access.SameCompany(actor, companyID) {
		return nil, domain.ErrForbidden
	}
	sub, err := uc.subRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.SubscriptionResponse{
			CompanyID:   companyID,
			Plan:        string(entity.PlanBasic),
			Active:      true,
			MaxBranches: entity.PlanBasic.MaxBranches(),
			InForce:     true,
		}, nil
	}
	return toSubscriptionResponse(sub), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		CompanyID:   s.CompanyID,
		Plan:        string(s.Plan),
		StartDate:   s.StartDate.Format("2006-01-02"),
		EndDate:     s.EndDate.Format("2006-01-02"),
		Active:      s.Active,
		MaxBranches: s.MaxBranches,
		InForce:     s.InForce(time.Now()),
	}
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales. La creación está
// limitada por la cuota del plan vigente de la compañía.
type BranchUseCase struct {
	branchRepo repository.BranchRepository
	entitle    *entitlement.Resolver
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branchRepo repository.BranchRepository, entitle *entitlement.Resolver) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo, entitle: entitle}
}

// Create crea una sucursal. La cuota del plan es intrínseca al tenant y se
// aplica SIEMPRE, incluso cuando crea el super_admin en nombre de la
// compañía. Un plan vencido degrada la cuota a la del plan básico.
func (uc *BranchUseCase) Create(actor access.Actor, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	companyID := actor.CompanyID
	if actor.Role == entity.RoleSuperAdmin {
		companyID = in.CompanyID
	} else if !access.IsAdminOrManager(actor) || actor.BranchID != "" {
		// Un gestor acotado a una sucursal no crea sucursales nuevas.
		return nil, domain.ErrForbidden
	}
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	ent, err := uc.entitle.Resolve(companyID)
	if err != nil {
		return nil, err
	}
	maxBranches := ent.MaxBranches
	if !ent.InForce(time.Now()) {
		maxBranches = entity.PlanBasic.MaxBranches()
	}
	count, err := uc.branchRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if count >= maxBranches {
		return nil, domain.ErrQuotaExceeded
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal visible para el actor.
func (uc *BranchUseCase) GetByID(actor access.Actor, id string) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, access.Resource{CompanyID: branch.CompanyID, BranchID: branch.ID}) &&
		!access.SameCompany(actor, branch.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return toBranchResponse(branch), nil
}

// Update actualiza datos de la sucursal.
func (uc *BranchUseCase) Update(actor access.Actor, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if !access.IsAdminOrManager(actor) || !access.SameCompany(actor, branch.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if actor.BranchID != "" && actor.BranchID != branch.ID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	if in.Email != nil {
		branch.Email = *in.Email
	}
	branch.UpdatedAt = time.Now()
	if err := uc.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista sucursales según el alcance del actor.
func (uc *BranchUseCase) List(actor access.Actor, page dto.PageRequest) (*dto.BranchListResponse, error) {
	page.DefaultPage()
	scope := access.VisibleScope(actor)
	if scope.None {
		return &dto.BranchListResponse{Items: []dto.BranchResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
	}
	var (
		list []*entity.Branch
		err  error
	)
	if scope.All {
		list, err = uc.branchRepo.ListAll(page.Limit, page.Offset)
	} else if scope.CompanyID != "" {
		list, err = uc.branchRepo.ListByCompany(scope.CompanyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		if scope.BranchID != "" && b.ID != scope.BranchID {
			continue
		}
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una sucursal (tenant_admin de la compañía o super_admin).
func (uc *BranchUseCase) Delete(actor access.Actor, id string) error {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}
	if actor.Role != entity.RoleSuperAdmin &&
		!(actor.Role == entity.RoleTenantAdmin && access.SameCompany(actor, branch.CompanyID) && actor.BranchID == "") {
		return domain.ErrForbidden
	}
	return uc.branchRepo.Delete(id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

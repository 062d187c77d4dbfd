package usecase

import (
	"time"

	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// UserUseCase gestión de usuarios del tenant. El alta pasa por el caso de
// uso de auth (hash de password); acá viven lectura, edición y desactivación.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario: el propio perfil siempre; ajenos solo dentro
// del tenant para administradores.
func (uc *UserUseCase) GetByID(actor access.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, access.Resource{CompanyID: user.CompanyID, BranchID: user.BranchID, OwnerID: user.ID}) {
		return nil, domain.ErrForbidden
	}
	return toUserResponse(user), nil
}

// Update edita nombre/teléfono (el propio usuario) y además sucursal
// asignada y estado (administradores del tenant).
func (uc *UserUseCase) Update(actor access.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	self := actor.ID == user.ID
	admin := actor.Role == entity.RoleSuperAdmin ||
		(actor.Role == entity.RoleTenantAdmin && access.SameCompany(actor, user.CompanyID))
	if !self && !admin {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.BranchID != nil || in.Status != nil {
		if !admin {
			return nil, domain.ErrForbidden
		}
		if in.BranchID != nil {
			user.BranchID = *in.BranchID
		}
		if in.Status != nil {
			if *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
				return nil, domain.ErrInvalidInput
			}
			user.Status = *in.Status
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios del tenant (administradores).
func (uc *UserUseCase) List(actor access.Actor, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.User
		err  error
	)
	switch {
	case actor.Role == entity.RoleSuperAdmin:
		list, err = uc.repo.ListAll(page.Limit, page.Offset)
	case actor.Role == entity.RoleTenantAdmin || actor.Role == entity.RoleManager:
		list, err = uc.repo.ListByCompany(actor.CompanyID, page.Limit, page.Offset)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// BranchRepository puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	Delete(id string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error)
	ListAll(limit, offset int) ([]*entity.Branch, error)
	// CountByCompany cuenta las sucursales existentes (para la cuota del plan).
	CountByCompany(companyID string) (int, error)
}

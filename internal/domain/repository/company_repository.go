package repository

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// CompanyRepository puerto de persistencia para compañías (tenants).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Company, error)
}

// Package auth implementa registro y login de usuarios.
package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/entitlement"
	"github.com/jeansk1/eva4-backend/internal/domain"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
	"github.com/jeansk1/eva4-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	entitle     *entitlement.Resolver
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, entitle *entitlement.Resolver, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, companyRepo: companyRepo, entitle: entitle, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste. El email
// es único en todo el sistema; devuelve ErrEmailAlreadyExists si ya existe.
// Solo super_admin puede crear usuarios sin compañía.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleSeller
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if role == entity.RoleSuperAdmin {
		if in.CompanyID != "" {
			return nil, domain.ErrInvalidInput // super_admin no pertenece a una compañía
		}
	} else {
		if in.CompanyID == "" {
			return nil, domain.ErrInvalidInput
		}
		company, err := uc.companyRepo.GetByID(in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		BranchID:     in.BranchID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        in.Phone,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera el JWT y retorna token + usuario +
// plan vigente de su compañía. Los errores de credenciales no distinguen
// entre email inexistente y password incorrecta hacia afuera.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TokenInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      string(user.Role),
		BranchID:  user.BranchID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	plan := entity.PlanBasic
	if user.CompanyID != "" {
		ent, err := uc.entitle.Resolve(user.CompanyID)
		if err != nil {
			return nil, err
		}
		plan = ent.Plan
	}
	return &dto.LoginResponse{
		Token: token,
		Plan:  string(plan),
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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

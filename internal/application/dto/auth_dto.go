package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario y el plan resuelto de su compañía.
type LoginResponse struct {
	Token string       `json:"token"`
	Plan  string       `json:"plan"` // plan vigente de la compañía; "basic" si no hay suscripción
	User  UserResponse `json:"user"`
}

// RegisterRequest alta de usuario (restringida a administradores).
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"omitempty,uuid4"`
	BranchID  string `json:"branch_id" validate:"omitempty,uuid4"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"omitempty,oneof=super_admin tenant_admin manager seller customer"`
}

// UpdateUserRequest campos editables de un usuario. Sucursal asignada y
// estado solo los cambia un administrador.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	BranchID *string `json:"branch_id"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	BranchID  string    `json:"branch_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package entity

import "time"

// Role es el rol de un usuario dentro del sistema. Enumeración cerrada:
// los switches sobre Role deben cubrir todos los valores.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"  // operador de la plataforma, sin compañía
	RoleTenantAdmin Role = "tenant_admin" // administrador de una compañía
	RoleManager     Role = "manager"      // gerente de compañía o sucursal
	RoleSeller      Role = "seller"       // vendedor POS, atado a una sucursal
	RoleCustomer    Role = "customer"     // cliente final de la tienda pública
)

// Valid indica si el rol es uno de los valores conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleManager, RoleSeller, RoleCustomer:
		return true
	}
	return false
}

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema. Todo usuario salvo el super_admin
// pertenece a exactamente una compañía; BranchID es opcional y restringe la
// visibilidad a esa sucursal.
type User struct {
	ID           string
	CompanyID    string // vacío solo para super_admin
	BranchID     string // sucursal asignada; vacío = sin restricción de sucursal
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         Role
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Package access implementa la capa de autorización por rol y tenant.
// Las decisiones se toman sobre un Actor resuelto (rol + compañía +
// sucursal asignada) y nunca sobre strings libres: Role es una enumeración
// cerrada y los switch son exhaustivos.
package access

import "github.com/jeansk1/eva4-backend/internal/domain/entity"

// Actor es el usuario resuelto por la capa de autenticación externa.
// Un Actor zero-value representa un visitante anónimo.
type Actor struct {
	ID        string
	Role      entity.Role
	CompanyID string
	BranchID  string // sucursal asignada; vacío = sin restricción de sucursal
}

// Authenticated indica si el actor es un usuario autenticado.
func (a Actor) Authenticated() bool { return a.ID != "" }

// Resource describe el recurso objetivo de la operación. Campos vacíos
// significan "no aplica" (ej. un recurso global no tiene CompanyID).
type Resource struct {
	CompanyID string // tenant dueño del recurso
	BranchID  string // sucursal del recurso, si es un recurso por sucursal
	OwnerID   string // usuario dueño (perfil propio, vendedor de la venta, dueño del carrito)
}

// CanAccess evalúa las reglas de visibilidad/mutación a nivel de objeto.
// Orden de precedencia (gana la primera que calza):
//
//  1. super_admin accede a todo.
//  2. El recurso pertenece al propio actor (perfil, su venta, su carrito).
//  3. tenant_admin sin sucursal asignada accede a todo su tenant.
//  4. Un actor con sucursal asignada queda acotado a esa sucursal exacta,
//     incluso si su rol es tenant_admin o manager.
//  5. En cualquier otro caso, denegado.
func CanAccess(a Actor, r Resource) bool {
	if a.Role == entity.RoleSuperAdmin {
		return true
	}
	if r.OwnerID != "" && r.OwnerID == a.ID {
		return true
	}
	if a.Role == entity.RoleTenantAdmin && a.BranchID == "" && r.CompanyID != "" && r.CompanyID == a.CompanyID {
		return true
	}
	if a.BranchID != "" && r.BranchID != "" {
		return r.CompanyID == a.CompanyID && r.BranchID == a.BranchID
	}
	return false
}

// IsAdminOrManager indica si el actor puede ejecutar operaciones de gestión
// (crear/editar catálogo, proveedores, compras, inventario).
func IsAdminOrManager(a Actor) bool {
	switch a.Role {
	case entity.RoleSuperAdmin, entity.RoleTenantAdmin, entity.RoleManager:
		return true
	case entity.RoleSeller, entity.RoleCustomer:
		return false
	}
	return false
}

// CanRecordSale indica si el actor puede registrar ventas POS
// (vendedores incluidos).
func CanRecordSale(a Actor) bool {
	switch a.Role {
	case entity.RoleSuperAdmin, entity.RoleTenantAdmin, entity.RoleManager, entity.RoleSeller:
		return true
	case entity.RoleCustomer:
		return false
	}
	return false
}

// SameCompany indica si el actor puede operar sobre recursos del tenant dado.
// super_admin opera sobre cualquier tenant.
func SameCompany(a Actor, companyID string) bool {
	if a.Role == entity.RoleSuperAdmin {
		return true
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}

// Scope describe el alcance de un listado para el actor. Exactamente uno de
// All/None domina; si ambos son false, aplican los filtros no vacíos.
type Scope struct {
	All       bool   // sin filtros (super_admin)
	None      bool   // lista vacía (actor sin tenant)
	CompanyID string // limitar al tenant
	BranchID  string // limitar a la sucursal asignada
	OwnerID   string // limitar a registros propios (vendedores sobre sus ventas)
}

// VisibleScope calcula el alcance de lectura de colecciones con el mismo
// criterio de filtrado por tenant/sucursal/dueño que los endpoints de
// listado aplican en sus queries.
func VisibleScope(a Actor) Scope {
	switch a.Role {
	case entity.RoleSuperAdmin:
		return Scope{All: true}
	case entity.RoleTenantAdmin, entity.RoleManager:
		if a.CompanyID == "" {
			return Scope{None: true}
		}
		return Scope{CompanyID: a.CompanyID, BranchID: a.BranchID}
	case entity.RoleSeller:
		if a.CompanyID == "" {
			return Scope{None: true}
		}
		return Scope{CompanyID: a.CompanyID, BranchID: a.BranchID, OwnerID: a.ID}
	case entity.RoleCustomer:
		return Scope{OwnerID: a.ID}
	}
	return Scope{None: true}
}

package entity

import "time"

// Company representa una compañía/tenant del sistema. Es la unidad de
// aislamiento de datos: sucursales, proveedores, productos y usuarios
// pertenecen a una compañía.
type Company struct {
	ID        string
	Name      string
	TaxID     string // RUT de la compañía (se valida fuera de este núcleo)
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

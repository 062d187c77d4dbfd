package entity

import "time"

// Branch representa una sucursal (punto de venta físico o lógico) de una
// compañía. La cantidad de sucursales por compañía está limitada por la
// cuota del plan vigente al momento de crearla.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

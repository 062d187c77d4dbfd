package entity

import "time"

// Supplier representa un proveedor de una compañía.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

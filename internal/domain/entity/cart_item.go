package entity

import "time"

// CartItem es una línea de carrito previa a la orden. Pertenece a un usuario
// autenticado (UserID) o a una sesión anónima (SessionKey); exactamente uno
// de los dos identifica la línea junto con el producto. No es estado de
// stock autoritativo.
type CartItem struct {
	ID         string
	UserID     string // vacío para carritos anónimos
	SessionKey string // vacío una vez re-asignado a un usuario
	ProductID  string
	Quantity   int64 // siempre ≥ 1
	AddedAt    time.Time
}

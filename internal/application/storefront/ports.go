package storefront

import (
	"context"

	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Orden, líneas, descuentos de stock y la
// limpieza del carrito (en checkout) se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		cartRepo repository.CartRepository,
	) error) error
}

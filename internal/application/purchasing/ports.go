package purchasing

import (
	"context"

	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera, líneas y aumentos
// de stock de una compra se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error) error
}

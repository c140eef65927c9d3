package inventory

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es lo que garantiza que la actualización del
// producto y el append al libro de movimientos sean una sola unidad atómica:
// nunca puede observarse uno sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

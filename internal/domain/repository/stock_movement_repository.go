package repository

import "github.com/jhoicas/suministros-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. Es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct devuelve los movimientos de un producto ordenados por
	// fecha ascendente (orden del libro).
	ListByProduct(productID string) ([]*entity.StockMovement, error)
	ListByType(movementType string) ([]*entity.StockMovement, error)
	ListByOrder(purchaseOrderID string) ([]*entity.StockMovement, error)
}

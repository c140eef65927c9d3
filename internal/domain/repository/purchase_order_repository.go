package repository

import (
	"time"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra. Create inserta la orden y todas sus líneas; para que sea atómico
// debe ejecutarse con un Querier transaccional (ver TxRunner).
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas cargadas, o nil si no existe.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// UpdateStatus es un compare-and-set: solo escribe si la orden sigue en
	// currentStatus; si otro actor la movió antes, devuelve domain.ErrConflict.
	UpdateStatus(orderID, newStatus, currentStatus string) error
	// HasMovements indica si algún movimiento de stock referencia la orden.
	HasMovements(orderID string) (bool, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status string) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error)
	ListByDateRange(from, to time.Time) ([]*entity.PurchaseOrder, error)
	Delete(id string) error
}

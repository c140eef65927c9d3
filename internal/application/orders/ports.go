package orders

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción de BD con un
// repositorio de órdenes atado a esa tx. Garantiza que la orden y sus líneas
// se persistan como una sola unidad.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// OrderPDFGenerator genera el documento PDF de una orden de compra para
// enviar al proveedor.
type OrderPDFGenerator interface {
	GenerateOrderPDF(
		ctx context.Context,
		order *entity.PurchaseOrder,
		supplier *entity.Supplier,
		lines []OrderLineForPDF,
	) ([]byte, error)
}

// OrderLineForPDF línea de la orden enriquecida con el nombre del producto.
type OrderLineForPDF struct {
	ProductName string
	Line        entity.OrderLine
}

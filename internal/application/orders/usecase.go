package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	appinv "github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// PurchaseOrderUseCase gestiona el ciclo de vida de las órdenes de compra:
// creación atómica (orden + líneas), máquina de estados y el fan-out de
// movimientos al pasar a ENTREGADA.
type PurchaseOrderUseCase struct {
	orderTx      OrderTxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	ledger       *appinv.RegisterMovementUseCase
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	orderTx OrderTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	ledger *appinv.RegisterMovementUseCase,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		orderTx:      orderTx,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		ledger:       ledger,
	}
}

// Create valida proveedor y productos, calcula subtotales y total, y persiste
// la orden con sus líneas en una sola transacción. Estado inicial: PENDIENTE.
// Falla con ErrInvalidInput si no hay líneas o alguna cantidad es < 1, y con
// ErrNotFound si el proveedor o algún producto no existe; en ese caso no se
// persiste nada.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.PurchaseOrder, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: supplier.ID,
		OrderDate:  orderDate,
		Status:     entity.OrderStatusPendiente,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	total := decimal.Zero
	for _, lineIn := range in.Lines {
		if lineIn.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if lineIn.UnitPrice != nil && lineIn.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(lineIn.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.Price
		if lineIn.UnitPrice != nil {
			unitPrice = *lineIn.UnitPrice
		}
		line := entity.OrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       product.ID,
			Quantity:        lineIn.Quantity,
			UnitPrice:       unitPrice,
		}
		line.ComputeSubtotal()
		total = total.Add(line.Subtotal)
		order.Lines = append(order.Lines, line)
	}
	order.TotalAmount = total

	// Orden + líneas en una sola transacción.
	err = uc.orderTx.RunOrder(ctx, func(orderRepo repository.PurchaseOrderRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ChangeStatus aplica una transición de la máquina de estados. Solo la arista
// (no ENTREGADA → ENTREGADA) tiene efecto adicional: por cada línea se
// registra una ENTRADA en el motor de stock (la mercancía del proveedor llega
// al almacén) al precio de la línea, referenciando la orden.
//
// El cambio de estado y el fan-out no son una unidad atómica conjunta; cada
// movimiento sí lo es por sí mismo. Si una línea falla, las restantes se
// abortan y los movimientos ya aplicados NO se compensan: el llamador debe
// tratar la entrega fallida como pendiente de conciliación manual.
func (uc *PurchaseOrderUseCase) ChangeStatus(ctx context.Context, orderID, newStatus string) (*entity.PurchaseOrder, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrConflict
	}

	// Compare-and-set sobre el estado leído: si otro actor movió la orden
	// entre la lectura y el UPDATE, el repo devuelve ErrConflict y el fan-out
	// no se ejecuta. Solo el ganador de la transición entrega la mercancía.
	previous := order.Status
	if err := uc.orderRepo.UpdateStatus(order.ID, newStatus, previous); err != nil {
		return nil, err
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()

	if previous != entity.OrderStatusEntregada && newStatus == entity.OrderStatusEntregada {
		if err := uc.deliverLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// deliverLines registra una ENTRADA por línea, en orden; secuencial, lo que de
// paso serializa las líneas que comparten producto. Corta en el primer error.
func (uc *PurchaseOrderUseCase) deliverLines(ctx context.Context, order *entity.PurchaseOrder) error {
	for _, line := range order.Lines {
		price := line.UnitPrice
		_, err := uc.ledger.RegisterMovement(ctx, appinv.MovementInput{
			ProductID:       line.ProductID,
			PurchaseOrderID: order.ID,
			Type:            entity.MovementTypeENTRADA,
			Quantity:        line.Quantity,
			UnitPrice:       &price,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(limit, offset)
}

// ListByStatus lista órdenes por estado.
func (uc *PurchaseOrderUseCase) ListByStatus(ctx context.Context, status string) ([]*entity.PurchaseOrder, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByStatus(status)
}

// ListBySupplier lista órdenes de un proveedor.
func (uc *PurchaseOrderUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.PurchaseOrder, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return uc.orderRepo.ListBySupplier(supplierID)
}

// ListByPeriod lista órdenes cuya fecha está en [from, to].
func (uc *PurchaseOrderUseCase) ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.PurchaseOrder, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByDateRange(from, to)
}

// Delete elimina una orden. Una orden referenciada por el libro de stock no
// puede borrarse: los movimientos son inmutables y conservan su trazabilidad.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	hasMovements, err := uc.orderRepo.HasMovements(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrConflict
	}
	return uc.orderRepo.Delete(id)
}

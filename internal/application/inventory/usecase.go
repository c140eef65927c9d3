package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// RegisterMovementUseCase es el motor del libro de stock: registra movimientos
// (ENTRADA, SALIDA, AJUSTE) de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE sobre products) y Commit/Rollback. Es el único camino de
// escritura de Stock y Cost del producto.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	orderRepo   repository.PurchaseOrderRepository
}

// NewRegisterMovementUseCase construye el caso de uso. productRepo y movRepo
// van atados al pool (lecturas); las escrituras pasan por txRunner.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		orderRepo:   orderRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// ENTRADA/SALIDA: Quantity > 0. AJUSTE: Quantity ≥ 0 es el nuevo stock
// absoluto (conteo físico), no un delta. UnitPrice solo pesa en ENTRADA; si se
// omite se usa el precio de referencia del producto. Date por defecto es ahora.
type MovementInput struct {
	ProductID       string
	PurchaseOrderID string
	Type            string
	Quantity        int64
	UnitPrice       *decimal.Decimal
	Date            *time.Time
}

// RegisterMovement valida la entrada, abre una transacción, bloquea la fila
// del producto, aplica la rama según tipo y agrega el movimiento al libro con
// el stock resultante. Devuelve el movimiento creado.
//
// Errores: domain.ErrNotFound (producto u orden inexistente),
// domain.ErrInvalidInput (tipo o cantidad inválidos),
// domain.ErrInsufficientStock (SALIDA que dejaría stock negativo).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	switch input.Type {
	case entity.MovementTypeENTRADA, entity.MovementTypeSALIDA:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAJUSTE:
		if input.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// La orden referenciada debe existir (el libro nunca apunta al vacío).
	if input.PurchaseOrderID != "" {
		order, err := uc.orderRepo.GetByID(input.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: exclusión mutua por producto durante
		// todo el leer-calcular-escribir-append.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		unitPrice := product.Price
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}

		var newStock int64
		switch input.Type {
		case entity.MovementTypeENTRADA:
			// El CUMP se pondera con el stock ANTES de sumar la entrada.
			newCost := inventory.AverageCost(product.Stock, product.Cost, input.Quantity, unitPrice)
			newStock = product.Stock + input.Quantity
			if err := productRepo.UpdateStockAndCost(product.ID, newStock, newCost); err != nil {
				return err
			}
		case entity.MovementTypeSALIDA:
			newStock = product.Stock - input.Quantity
			if newStock < 0 {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStockAndCost(product.ID, newStock, product.Cost); err != nil {
				return err
			}
		case entity.MovementTypeAJUSTE:
			newStock = input.Quantity
			if err := productRepo.UpdateStockAndCost(product.ID, newStock, product.Cost); err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			PurchaseOrderID: input.PurchaseOrderID,
			Type:            input.Type,
			Quantity:        input.Quantity,
			UnitPrice:       unitPrice,
			StockAfter:      newStock,
			Date:            date,
			CreatedAt:       time.Now(),
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AdjustStock atajo de variación directa de stock. No toca el producto por su
// cuenta: enruta por RegisterMovement (delta positivo → ENTRADA al precio de
// referencia, negativo → SALIDA) para que el libro siga siendo replayable.
func (uc *RegisterMovementUseCase) AdjustStock(ctx context.Context, productID string, delta int64) (*entity.StockMovement, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	input := MovementInput{ProductID: productID, Type: entity.MovementTypeENTRADA, Quantity: delta}
	if delta < 0 {
		input.Type = entity.MovementTypeSALIDA
		input.Quantity = -delta
	}
	return uc.RegisterMovement(ctx, input)
}

// SetAverageCost fija directamente el costo promedio ponderado del producto.
// Solo corrige la proyección de costo; no genera movimiento.
func (uc *RegisterMovementUseCase) SetAverageCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.UpdateCost(productID, cost.Round(2))
}

// ListByProduct devuelve el libro de un producto en orden de fecha ascendente.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(productID)
}

// ListByType devuelve los movimientos de un tipo dado.
func (uc *RegisterMovementUseCase) ListByType(ctx context.Context, movementType string) ([]*entity.StockMovement, error) {
	if !entity.ValidMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByType(movementType)
}

// ListByOrder devuelve los movimientos generados por una orden de compra.
func (uc *RegisterMovementUseCase) ListByOrder(ctx context.Context, purchaseOrderID string) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByOrder(purchaseOrderID)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeENTRADA = "ENTRADA" // entrada: suma stock y recalcula el CUMP
	MovementTypeSALIDA  = "SALIDA"  // salida: resta stock, CUMP intacto
	MovementTypeAJUSTE  = "AJUSTE"  // ajuste: fija el stock a un valor absoluto (conteo físico)
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado de movimientos.
func ValidMovementType(t string) bool {
	return t == MovementTypeENTRADA || t == MovementTypeSALIDA || t == MovementTypeAJUSTE
}

// StockMovement es una entrada del libro de stock: inmutable una vez creada,
// nunca se actualiza ni se borra. Quantity siempre es una magnitud no negativa;
// el signo semántico lo da Type (en AJUSTE es el valor absoluto fijado).
// StockAfter guarda la cantidad en mano del producto inmediatamente después de
// aplicar este movimiento.
type StockMovement struct {
	ID              string
	ProductID       string
	PurchaseOrderID string // opcional: orden de compra que originó el movimiento
	Type            string
	Quantity        int64
	UnitPrice       decimal.Decimal // obligatorio en ENTRADA; en el resto, precio de referencia del producto
	StockAfter      int64
	Date            time.Time
	CreatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderStatusPendiente = "PENDIENTE"
	OrderStatusValidada  = "VALIDADA"
	OrderStatusEntregada = "ENTREGADA"
	OrderStatusAnulada   = "ANULADA"
)

// ValidOrderStatus indica si el valor pertenece al enum cerrado de estados.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPendiente, OrderStatusValidada, OrderStatusEntregada, OrderStatusAnulada:
		return true
	}
	return false
}

// orderTransitions es la tabla explícita de transiciones permitidas.
// ENTREGADA y ANULADA son estados finales.
var orderTransitions = map[string][]string{
	OrderStatusPendiente: {OrderStatusValidada, OrderStatusEntregada, OrderStatusAnulada},
	OrderStatusValidada:  {OrderStatusEntregada, OrderStatusAnulada},
	OrderStatusEntregada: {},
	OrderStatusAnulada:   {},
}

// CanTransition indica si la transición from → to está en la tabla.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseOrder es una orden de compra a proveedor. TotalAmount siempre es la
// suma de los subtotales de sus líneas al momento de la creación; las líneas
// son inmutables una vez creada la orden.
type PurchaseOrder struct {
	ID          string
	SupplierID  string
	OrderDate   time.Time
	Status      string
	TotalAmount decimal.Decimal
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderLine es una línea de orden de compra. Subtotal se calcula siempre como
// Quantity × UnitPrice, nunca se fija de forma independiente.
type OrderLine struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        int64
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
}

// ComputeSubtotal recalcula el subtotal de la línea.
func (l *OrderLine) ComputeSubtotal() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

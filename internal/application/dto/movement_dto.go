package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// UnitPrice es obligatorio conceptualmente solo en ENTRADA; si se omite se usa
// el precio de referencia del producto. Date por defecto es ahora.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id"`
	PurchaseOrderID string           `json:"purchase_order_id"`
	Type            string           `json:"type"` // ENTRADA, SALIDA, AJUSTE
	Quantity        int64            `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Date            *time.Time       `json:"date"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	Type            string          `json:"type"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	StockAfter      int64           `json:"stock_after"`
	Date            time.Time       `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
}

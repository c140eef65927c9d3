package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden de compra. UnitPrice opcional: por
// defecto se toma el precio de referencia del producto.
type OrderLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para crear una orden de compra con sus líneas.
type CreateOrderRequest struct {
	SupplierID string             `json:"supplier_id"`
	OrderDate  *time.Time         `json:"order_date"`
	Lines      []OrderLineRequest `json:"lines"`
}

// ChangeStatusRequest entrada para una transición de estado.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden de compra.
type OrderResponse struct {
	ID          string              `json:"id"`
	SupplierID  string              `json:"supplier_id"`
	OrderDate   time.Time           `json:"order_date"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

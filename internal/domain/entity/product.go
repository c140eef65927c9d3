package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de aprovisionamiento.
// Stock y Cost son una proyección del libro de movimientos: solo el motor de
// inventario puede escribirlos, y replayando los movimientos en orden de
// creación se debe reproducir exactamente el Stock actual.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio unitario de referencia
	Cost        decimal.Decimal // costo promedio ponderado (CUMP), 2 decimales
	Stock       int64           // cantidad en mano, nunca negativa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE): es la
// exclusión mutua por producto del motor de inventario, así que solo tiene
// sentido dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStockAndCost(productID string, stock int64, cost decimal.Decimal) error
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	ListLowStock(threshold int64) ([]*entity.Product, error)
	HasMovements(productID string) (bool, error)
	Delete(id string) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, purchase_order_id, type, quantity, unit_price, stock_after, date, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL.
// El diario es append-only: no hay Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var orderID *string
	err := row.Scan(
		&m.ID, &m.ProductID, &orderID, &m.Type, &m.Quantity, &m.UnitPrice,
		&m.StockAfter, &m.Date, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		m.PurchaseOrderID = *orderID
	}
	return &m, nil
}

// Create persiste un movimiento. PurchaseOrderID vacío se guarda como NULL.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	var orderID *string
	if m.PurchaseOrderID != "" {
		orderID = &m.PurchaseOrderID
	}
	query := `
		INSERT INTO stock_movements (id, product_id, purchase_order_id, type, quantity, unit_price, stock_after, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, orderID, m.Type, m.Quantity, m.UnitPrice,
		m.StockAfter, m.Date, m.CreatedAt,
	)
	if err != nil {
		// Producto u orden borrados entre la validación y el insert.
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista el historial de un producto en orden cronológico
// ascendente, para que el fold de los StockAfter sea reproducible.
func (r *StockMovementRepo) ListByProduct(productID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1 ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByType lista movimientos de un tipo, más recientes primero.
func (r *StockMovementRepo) ListByType(movementType string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE type = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, movementType)
	if err != nil {
		return nil, fmt.Errorf("list movements by type: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByOrder lista los movimientos generados por una orden de compra.
func (r *StockMovementRepo) ListByOrder(orderID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE purchase_order_id = $1 ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list movements by order: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, supplier_id, order_date, status, total_amount, created_at, updated_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
// Create exige un Querier transaccional: cabecera y líneas van juntas.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera y todas las líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, supplier_id, order_date, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.SupplierID, order.OrderDate, order.Status, order.TotalAmount,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range order.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (id, purchase_order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.PurchaseOrderID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// UpdateStatus cambia el estado de una orden con compare-and-set: el UPDATE
// solo aplica si la fila sigue en currentStatus. Cero filas afectadas significa
// que otro actor ganó la transición (o la orden ya no existe) → ErrConflict.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, newStatus, currentStatus string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		orderID, newStatus, currentStatus,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// HasMovements indica si la orden originó movimientos en el libro de stock.
func (r *PurchaseOrderRepo) HasMovements(orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_movements WHERE purchase_order_id = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order movements: %w", err)
	}
	return exists, nil
}

// List lista órdenes (sin líneas), más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(`ORDER BY order_date DESC, created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByStatus lista órdenes en un estado dado.
func (r *PurchaseOrderRepo) ListByStatus(status string) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(`WHERE status = $1 ORDER BY order_date DESC, created_at DESC`, status)
}

// ListBySupplier lista órdenes de un proveedor.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(`WHERE supplier_id = $1 ORDER BY order_date DESC, created_at DESC`, supplierID)
}

// ListByDateRange lista órdenes con fecha en [from, to].
func (r *PurchaseOrderRepo) ListByDateRange(from, to time.Time) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(`WHERE order_date >= $1 AND order_date <= $2 ORDER BY order_date DESC`, from, to)
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE. Los
// movimientos de stock la referencian con ON DELETE RESTRICT: si el libro
// apunta a la orden, la violación de FK se devuelve como ErrConflict.
func (r *PurchaseOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) listWhere(clause string, args ...any) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ` + clause
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		err := rows.Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_id, quantity, unit_price, subtotal
		FROM order_lines WHERE purchase_order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Stub de Querier: captura la sentencia y responde con tag/err fijos.
// ─────────────────────────────────────────────────────────────────────────────

type stubQuerier struct {
	tag  pgconn.CommandTag
	err  error
	sql  string
	args []any
}

func (s *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.sql = sql
	s.args = args
	return s.tag, s.err
}

func (s *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, s.err
}

func (s *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Compare-and-set de estado de orden
// ─────────────────────────────────────────────────────────────────────────────

// Cero filas afectadas significa que otro actor ganó la transición.
func TestPurchaseOrderRepo_UpdateStatusCAS(t *testing.T) {
	t.Run("pierde el CAS", func(t *testing.T) {
		q := &stubQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
		repo := NewPurchaseOrderRepository(q)

		err := repo.UpdateStatus("o1", entity.OrderStatusEntregada, entity.OrderStatusPendiente)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, q.sql, "AND status = $3", "el UPDATE debe condicionar sobre el estado leído")
		assert.Equal(t, []any{"o1", entity.OrderStatusEntregada, entity.OrderStatusPendiente}, q.args)
	})

	t.Run("gana el CAS", func(t *testing.T) {
		q := &stubQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
		repo := NewPurchaseOrderRepository(q)

		err := repo.UpdateStatus("o1", entity.OrderStatusValidada, entity.OrderStatusPendiente)
		assert.NoError(t, err)
	})
}

// Borrar una orden referenciada por el libro de stock viola la FK RESTRICT.
func TestPurchaseOrderRepo_DeleteConMovimientos(t *testing.T) {
	q := &stubQuerier{err: &pgconn.PgError{Code: "23503"}}
	repo := NewPurchaseOrderRepository(q)

	err := repo.Delete("o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert de movimiento con referencia rota
// ─────────────────────────────────────────────────────────────────────────────

// Producto u orden borrados entre la validación y el insert: la violación de
// FK se traduce a NotFound en lugar de subir como error interno.
func TestStockMovementRepo_CreateReferenciaRota(t *testing.T) {
	q := &stubQuerier{err: &pgconn.PgError{Code: "23503"}}
	repo := NewStockMovementRepository(q)

	err := repo.Create(&entity.StockMovement{
		ID:              "m1",
		ProductID:       "p1",
		PurchaseOrderID: "o1",
		Type:            entity.MovementTypeENTRADA,
		Quantity:        1,
		UnitPrice:       decimal.New(1000, -2),
		StockAfter:      1,
		Date:            time.Now(),
		CreatedAt:       time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

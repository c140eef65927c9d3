package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del diario de movimientos (protegido).
type MovementHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (ENTRADA|SALIDA|AJUSTE), quantity, unit_price (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID:       in.ProductID,
		PurchaseOrderID: in.PurchaseOrderID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		Date:            in.Date,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(m))
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Description  En orden cronológico ascendente; el último stock_after coincide
//               con el stock actual del producto.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	list, err := h.uc.ListByProduct(c.Context(), productID)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toMovementList(list))
}

// ListByType godoc
// @Summary      Movimientos por tipo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  true  "ENTRADA | SALIDA | AJUSTE"
// @Success      200   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListByType(c *fiber.Ctx) error {
	movementType := c.Query("type")
	list, err := h.uc.ListByType(c.Context(), movementType)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toMovementList(list))
}

// ListByOrder godoc
// @Summary      Movimientos generados por una orden de compra
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/movements [get]
func (h *MovementHandler) ListByOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	list, err := h.uc.ListByOrder(c.Context(), orderID)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toMovementList(list))
}

// movementError mapea errores del motor de stock a códigos HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto u orden no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		PurchaseOrderID: m.PurchaseOrderID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		StockAfter:      m.StockAfter,
		Date:            m.Date,
		CreatedAt:       m.CreatedAt,
	}
}

func toMovementList(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

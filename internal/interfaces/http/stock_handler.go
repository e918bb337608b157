package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
)

// StockHandler saldos del ledger y movimientos de entrada/salida.
type StockHandler struct {
	ledger    *inventory.LedgerUseCase
	movements *inventory.MovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase, movements *inventory.MovementUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, movements: movements}
}

// ListBalances godoc
// @Summary      Saldos de todos los productos con movimientos
// @Tags         stock
// @Produce      json
// @Router       /api/stock/balances [get]
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	out, err := h.ledger.ListBalances(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// GetBalance saldo de un producto; 0 si nunca tuvo movimientos.
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	id := c.Params("productId")
	q, err := h.ledger.GetBalance(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: id, Quantity: q})
}

// ApplyDelta godoc
// @Summary      Aplicar un delta directo al ledger
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyDeltaRequest  true  "Delta"
// @Success      200   {object}  dto.BalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/balances [post]
func (h *StockHandler) ApplyDelta(c *fiber.Ctx) error {
	var in dto.ApplyDeltaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.ApplyDelta(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Registrar entrada o salida
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.movements.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.movements.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// UpdateMovement revierte el delta anterior y aplica el nuevo.
func (h *StockHandler) UpdateMovement(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.movements.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
)

// LossHandler pérdidas (siempre salida del ledger).
type LossHandler struct {
	uc *inventory.LossUseCase
}

func NewLossHandler(uc *inventory.LossUseCase) *LossHandler {
	return &LossHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pérdida
// @Tags         losses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLossRequest  true  "Pérdida"
// @Success      201   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/losses [post]
func (h *LossHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLossRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LossHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LossHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

func (h *LossHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLossRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LossHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

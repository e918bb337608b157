package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
)

// CountHandler contagens (inmutables: sin update ni delete).
type CountHandler struct {
	uc *inventory.CountUseCase
}

func NewCountHandler(uc *inventory.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar contagem
// @Description  Con ajustarEstoque=true el saldo pasa a ser la cantidad contada.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountRequest  true  "Contagem"
// @Success      201   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBatch modo lista: todas las contagens o ninguna.
func (h *CountHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateCountBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateBatch(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewList(out))
}

func (h *CountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List filtra por produtoId o por período (dataInicio/dataFim).
func (h *CountHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if id := c.Query("produtoId"); id != "" {
		out, err := h.uc.ListByProduct(ctx, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.NewList(out))
	}
	from, to, err := dateRange(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	if from == nil && to == nil {
		out, err := h.uc.List(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.NewList(out))
	}
	out, err := h.uc.ListByPeriod(ctx, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

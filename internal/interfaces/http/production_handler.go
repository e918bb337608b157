package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
)

// ProductionHandler producciones con insumos.
type ProductionHandler struct {
	uc *inventory.ProductionUseCase
}

func NewProductionHandler(uc *inventory.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar producción
// @Description  Entrada del producto producido y salida de cada insumo en una sola transacción.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "Producción"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar producciones
// @Tags         production
// @Produce      json
// @Param        produtoId   query  string  false  "Producto producido"
// @Param        dataInicio  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        dataFim     query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
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

func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

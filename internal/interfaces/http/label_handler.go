package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/labeling"
)

// LabelHandler etiquetas: CRUD, agrupación por vencimiento, impresión ZPL y PDF.
type LabelHandler struct {
	uc *labeling.LabelUseCase
}

func NewLabelHandler(uc *labeling.LabelUseCase) *LabelHandler {
	return &LabelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear etiqueta
// @Description  Sin dataValidade se calcula con la validez del producto (o validade del body).
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLabelRequest  true  "Etiqueta"
// @Success      201   {object}  dto.LabelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels [post]
func (h *LabelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLabelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LabelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List busca por producto o responsable (?q=) o por rango de vencimiento.
func (h *LabelHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	if from != nil || to != nil {
		out, err := h.uc.ListByExpiry(c.UserContext(), from, to)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.NewList(out))
	}
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Groups godoc
// @Summary      Etiquetas agrupadas por vencimiento
// @Tags         labels
// @Produce      json
// @Param        ref  query  string  false  "Fecha de referencia (default hoy)"
// @Success      200  {object}  dto.LabelGroupsResponse
// @Router       /api/labels/groups [get]
func (h *LabelHandler) Groups(c *fiber.Ctx) error {
	ref, err := refDate(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	out, err := h.uc.GroupByExpiry(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteExpired borra las vencidas y las de ayer.
func (h *LabelHandler) DeleteExpired(c *fiber.Ctx) error {
	ref, err := refDate(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	n, err := h.uc.DeleteExpired(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteExpiredResponse{Deleted: n})
}

func (h *LabelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLabelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LabelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Print godoc
// @Summary      Imprimir etiqueta (ZPL)
// @Description  Sin impresora configurada o ante un error de red la impresión se simula.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la etiqueta"
// @Param        body  body  dto.PrintLabelRequest  false  "Copias (0 = cantidad de la etiqueta)"
// @Success      200   {object}  dto.PrintResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/{id}/print [post]
func (h *LabelHandler) Print(c *fiber.Ctx) error {
	var in dto.PrintLabelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	if in.Copies == 0 {
		in.Copies = c.QueryInt("copias", 0)
	}
	out, err := h.uc.Print(c.UserContext(), c.Params("id"), in.Copies)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Etiqueta en PDF con código QR
// @Tags         labels
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la etiqueta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels/{id}/pdf [get]
func (h *LabelHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	b, err := h.uc.RenderPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="etiqueta-%s.pdf"`, id))
	return c.Send(b)
}

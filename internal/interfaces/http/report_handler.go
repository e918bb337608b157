package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/analytics"
	"github.com/nicklvs1307/stockfy/internal/application/dto"
)

// ReportHandler reportes agregados de etiquetas, producción y contagens.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportFilter(c *fiber.Ctx) (dto.ReportFilter, error) {
	from, to, err := dateRange(c)
	if err != nil {
		return dto.ReportFilter{}, err
	}
	return dto.ReportFilter{From: from, To: to, EmployeeID: c.Query("funcionarioId")}, nil
}

// Get godoc
// @Summary      Reporte por producto y funcionario
// @Tags         reports
// @Produce      json
// @Param        kind           path   string  true   "labels | production | counts"
// @Param        dataInicio     query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        dataFim        query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Param        funcionarioId  query  string  false  "Filtrar por funcionario"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	f, err := reportFilter(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	out, err := h.uc.Build(c.UserContext(), c.Params("kind"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export descarga el reporte como planilla.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	f, err := reportFilter(c)
	if err != nil {
		return invalidParams(c, err.Error())
	}
	b, contentType, name, err := h.uc.Export(c.UserContext(), c.Params("kind"), f)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(b)
}
